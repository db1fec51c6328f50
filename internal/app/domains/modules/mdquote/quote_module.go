package mdquote

import (
	"context"
	"errors"

	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/repo/rpquote"
)

// QuoteModule 报价模块：区域解析 + 报价引擎 + 询价历史
type QuoteModule struct {
	engine    *Engine
	resolver  *ZoneResolver
	quoteRepo rpquote.QuoteRepository
}

// NewQuoteModule 创建报价模块
func NewQuoteModule(engine *Engine, resolver *ZoneResolver, quoteRepo rpquote.QuoteRepository) *QuoteModule {
	return &QuoteModule{
		engine:    engine,
		resolver:  resolver,
		quoteRepo: quoteRepo,
	}
}

// QuoteVendor 计算单个承运商的报价，served=false 表示承运商不服务该线路
func (m *QuoteModule) QuoteVendor(ctx context.Context, s *etquote.Shipment, v *etvendor.Vendor) (*etquote.Quote, bool, error) {
	lane, ok, err := m.resolver.ResolveLane(ctx, v, s)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	q, err := m.engine.Calculate(s, v, *lane)
	if errors.Is(err, ErrLaneNotServed) || errors.Is(err, etvendor.ErrRateCardMissing) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return q, true, nil
}

// SaveRecord 保存询价记录
func (m *QuoteModule) SaveRecord(ctx context.Context, record *etquote.Record) error {
	return m.quoteRepo.Create(ctx, record)
}

// ListHistory 查询客户最近的询价记录
func (m *QuoteModule) ListHistory(ctx context.Context, customerID int64, limit int) ([]*etquote.Record, error) {
	return m.quoteRepo.ListByCustomer(ctx, customerID, limit)
}
