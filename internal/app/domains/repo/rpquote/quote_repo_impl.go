package rpquote

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"freightrate/common/entity"
	"freightrate/internal/app/domains/entity/etquote"
)

// QuoteRepositoryImpl 询价历史仓储实现（MySQL）
type QuoteRepositoryImpl struct {
	db *gorm.DB
}

// NewQuoteRepository 创建询价历史仓储实例
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &QuoteRepositoryImpl{db: db}
}

// Create 保存询价记录
func (r *QuoteRepositoryImpl) Create(ctx context.Context, record *etquote.Record) error {
	request, err := json.Marshal(record.Shipment)
	if err != nil {
		return fmt.Errorf("marshal shipment failed: %w", err)
	}
	result, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal result failed: %w", err)
	}

	po := &entity.QuoteRecord{
		ID:          record.ID,
		CustomerID:  record.CustomerID,
		FromPincode: record.Shipment.FromPincode,
		ToPincode:   record.Shipment.ToPincode,
		Mode:        string(record.Shipment.Mode),
		Request:     request,
		Result:      result,
		CreatedAt:   record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// ListByCustomer 查询客户最近的询价记录
func (r *QuoteRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]*etquote.Record, error) {
	var pos []entity.QuoteRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*etquote.Record, 0, len(pos))
	for i := range pos {
		record, err := toDomainModel(&pos[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toDomainModel(po *entity.QuoteRecord) (*etquote.Record, error) {
	var shipment etquote.Shipment
	if err := json.Unmarshal(po.Request, &shipment); err != nil {
		return nil, fmt.Errorf("unmarshal shipment failed: %w", err)
	}
	var result etquote.Result
	if err := json.Unmarshal(po.Result, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result failed: %w", err)
	}
	return &etquote.Record{
		ID:         po.ID,
		CustomerID: po.CustomerID,
		Shipment:   &shipment,
		Result:     &result,
		CreatedAt:  po.CreatedAt,
	}, nil
}
