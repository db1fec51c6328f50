package rpimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"freightrate/common/entity"
	"freightrate/internal/app/domains/entity/etimport"
)

// ImportRepositoryImpl 导入任务仓储实现（MySQL）
type ImportRepositoryImpl struct {
	db *gorm.DB
}

// NewImportRepository 创建导入任务仓储实例
func NewImportRepository(db *gorm.DB) ImportRepository {
	return &ImportRepositoryImpl{db: db}
}

// Create 创建导入任务
func (r *ImportRepositoryImpl) Create(ctx context.Context, job *etimport.Job) error {
	rows, err := json.Marshal(job.Rows)
	if err != nil {
		return fmt.Errorf("marshal rows failed: %w", err)
	}
	po := &entity.ImportJob{
		ID:        job.ID,
		VendorID:  job.VendorID,
		Status:    string(job.Status),
		Total:     job.Total,
		Rows:      rows,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 查询导入任务，不读取行数据列
func (r *ImportRepositoryImpl) GetByID(ctx context.Context, id string) (*etimport.Job, error) {
	var po entity.ImportJob
	err := r.db.WithContext(ctx).
		Omit("row_data").
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	job := &etimport.Job{
		ID:         po.ID,
		VendorID:   po.VendorID,
		Status:     etimport.Status(po.Status),
		Total:      po.Total,
		Imported:   po.Imported,
		Rejected:   po.Rejected,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
		FinishedAt: po.FinishedAt,
	}
	if len(po.Errors) > 0 {
		if err := json.Unmarshal(po.Errors, &job.Errors); err != nil {
			return nil, fmt.Errorf("unmarshal errors failed: %w", err)
		}
	}
	return job, nil
}
