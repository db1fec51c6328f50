package svquote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/modules/mdauth"
	"freightrate/internal/app/domains/modules/mdquote"
	"freightrate/internal/app/domains/modules/mdvendor"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/pkg/logger"
)

// QuoteService 询价服务，负责询价业务编排
type QuoteService struct {
	authModule   *mdauth.AuthModule
	vendorModule *mdvendor.VendorModule
	quoteModule  *mdquote.QuoteModule
	logger       logger.Logger
	historyLimit int
}

// NewQuoteService 创建询价服务实例
func NewQuoteService(
	authModule *mdauth.AuthModule,
	vendorModule *mdvendor.VendorModule,
	quoteModule *mdquote.QuoteModule,
	log logger.Logger,
	historyLimit int,
) *QuoteService {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &QuoteService{
		authModule:   authModule,
		vendorModule: vendorModule,
		quoteModule:  quoteModule,
		logger:       log,
		historyLimit: historyLimit,
	}
}

// Calculate 询价（完整业务流程）
// 1. 校验货件
// 2. 读取客户（套餐决定公共承运商报价是否锁定）
// 3. 读取候选承运商：客户协议承运商 + 同运输方式且已配置价格的公共承运商
// 4. 逐个解析区域并计算报价，不服务的线路跳过
// 5. 合并打标签后分别排序，锁定公共承运商报价
// 6. 保存询价记录（失败只记录日志）
func (s *QuoteService) Calculate(ctx context.Context, customerID int64, shipment *etquote.Shipment) (*etquote.Result, error) {
	if err := shipment.Validate(); err != nil {
		be := errorx.Validation(err)
		var fe *etquote.FieldError
		if errors.As(err, &fe) {
			be = be.WithDetail(fe.Field, fe.Err.Error())
		}
		return nil, be
	}

	customer, err := s.authModule.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	if customer == nil {
		return nil, errorx.NotFound("customer not found")
	}

	vendors, err := s.vendorModule.ListCandidates(ctx, customerID, shipment.Mode)
	if err != nil {
		return nil, fmt.Errorf("list candidate vendors failed: %w", err)
	}

	result := &etquote.Result{
		TiedUp:  make([]*etquote.Quote, 0),
		Company: make([]*etquote.Quote, 0),
	}
	all := make([]*etquote.Quote, 0, len(vendors))
	for _, v := range vendors {
		q, served, err := s.quoteModule.QuoteVendor(ctx, shipment, v)
		if err != nil {
			s.logger.Errorf(ctx, "[Quote] calculate failed: vendor_id=%d, error=%v", v.ID, err)
			return nil, errorx.Internal("failed to calculate", err)
		}
		if !served {
			continue
		}
		all = append(all, q)
		if q.TiedUp {
			result.TiedUp = append(result.TiedUp, q)
		} else {
			result.Company = append(result.Company, q)
		}
	}

	// 5. 标签基于全部报价，两个列表各自排序
	etquote.Tag(all)
	etquote.Sort(result.TiedUp, shipment.Express)
	etquote.Sort(result.Company, shipment.Express)
	if !customer.CanViewCompanyQuotes() {
		for _, q := range result.Company {
			q.Lock()
		}
	}

	// 6. 保存询价记录
	record := &etquote.Record{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Shipment:   shipment,
		Result:     result,
		CreatedAt:  time.Now(),
	}
	if err := s.quoteModule.SaveRecord(ctx, record); err != nil {
		s.logger.Warnf(ctx, "[Quote] save quote record failed: customer_id=%d, error=%v", customerID, err)
	}

	s.logger.Infof(ctx, "[Quote] calculated: customer_id=%d, %s->%s, boxes=%d, vendors=%d, tied_up=%d, company=%d",
		customerID, shipment.FromPincode, shipment.ToPincode, shipment.BoxCount(),
		len(vendors), len(result.TiedUp), len(result.Company))
	return result, nil
}

// ListHistory 查询客户最近的询价记录
func (s *QuoteService) ListHistory(ctx context.Context, customerID int64) ([]*etquote.Record, error) {
	return s.quoteModule.ListHistory(ctx, customerID, s.historyLimit)
}
