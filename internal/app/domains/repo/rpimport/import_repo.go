package rpimport

import (
	"context"

	"freightrate/internal/app/domains/entity/etimport"
)

// ImportRepository 导入任务仓储接口
type ImportRepository interface {
	// Create 创建导入任务（含行数据）
	Create(ctx context.Context, job *etimport.Job) error

	// GetByID 查询导入任务（不含行数据），不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*etimport.Job, error)
}
