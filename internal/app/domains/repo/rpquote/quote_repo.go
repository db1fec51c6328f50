package rpquote

import (
	"context"

	"freightrate/internal/app/domains/entity/etquote"
)

// QuoteRepository 询价历史仓储接口
type QuoteRepository interface {
	// Create 保存询价记录
	Create(ctx context.Context, record *etquote.Record) error

	// ListByCustomer 查询客户最近的询价记录（按时间倒序）
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]*etquote.Record, error)
}
