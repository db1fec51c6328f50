package svimport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etimport"
	"freightrate/internal/app/domains/modules/mdimport"
	"freightrate/internal/app/domains/modules/mdvendor"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/pkg/logger"
)

// MaxWait Smart Wait 最长等待时间
const MaxWait = 30 * time.Second

// ImportService 邮编导入服务
type ImportService struct {
	importModule *mdimport.ImportModule
	vendorModule *mdvendor.VendorModule
	logger       logger.Logger
}

// NewImportService 创建导入服务实例
func NewImportService(importModule *mdimport.ImportModule, vendorModule *mdvendor.VendorModule, log logger.Logger) *ImportService {
	return &ImportService{
		importModule: importModule,
		vendorModule: vendorModule,
		logger:       log,
	}
}

// StartImport 创建导入任务（完整业务流程）
// 1. 校验承运商存在（vendorID=0 为全局目录）
// 2. 创建任务并落库（PENDING）
// 3. 投递到 Worker 队列
// 4. Smart Wait（等待导入结果），超时返回仍在处理中的任务
func (s *ImportService) StartImport(ctx context.Context, vendorID int64, rows []model.PincodeRow, wait time.Duration) (*etimport.Job, error) {
	if vendorID != 0 {
		vendor, err := s.vendorModule.GetVendor(ctx, vendorID)
		if err != nil {
			return nil, fmt.Errorf("get vendor failed: %w", err)
		}
		if vendor == nil {
			return nil, errorx.NotFound("vendor not found")
		}
	}

	job, err := etimport.NewJob(uuid.New().String(), vendorID, rows)
	if err != nil {
		return nil, errorx.Validation(err)
	}
	if err := s.importModule.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("save import job failed: %w", err)
	}

	if wait > MaxWait {
		wait = MaxWait
	}
	n, err := s.importModule.Submit(ctx, job, wait)
	if err != nil {
		s.logger.Errorf(ctx, "[Import] submit failed: import_id=%s, error=%v", job.ID, err)
		return nil, fmt.Errorf("submit import job failed: %w", err)
	}
	if n != nil {
		job.ApplyResult(n)
	}

	s.logger.Infof(ctx, "[Import] submitted: import_id=%s, vendor_id=%d, rows=%d, status=%s",
		job.ID, vendorID, job.Total, job.Status)
	return job, nil
}

// GetImport 查询导入任务
func (s *ImportService) GetImport(ctx context.Context, importID string) (*etimport.Job, error) {
	job, err := s.importModule.GetJob(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("get import job failed: %w", err)
	}
	if job == nil {
		return nil, errorx.NotFound("import not found")
	}
	return job, nil
}
