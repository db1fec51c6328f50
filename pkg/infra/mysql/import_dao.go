package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freightrate/common/entity"
	"freightrate/common/model"
)

const upsertBatchSize = 500

// 错误定义
var (
	ErrImportNotFound = errors.New("import job not found")
	ErrVendorNotFound = errors.New("vendor not found")
	ErrInvalidZones   = errors.New("invalid vendor zones")
)

// ImportDAO 导入任务数据访问对象（Worker 侧）
type ImportDAO struct {
	db *gorm.DB
}

// NewImportDAO 创建 ImportDAO 实例
func NewImportDAO(db *gorm.DB) *ImportDAO {
	return &ImportDAO{db: db}
}

// GetImportJob 根据 ID 获取导入任务
func (dao *ImportDAO) GetImportJob(ctx context.Context, importID string) (*entity.ImportJob, error) {
	var job entity.ImportJob
	err := dao.db.WithContext(ctx).Where("id = ?", importID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportNotFound
		}
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}
	return &job, nil
}

// DecodeRows 解析导入任务中保存的行数据
func DecodeRows(job *entity.ImportJob) ([]model.PincodeRow, error) {
	var rows []model.PincodeRow
	if len(job.Rows) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(job.Rows, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal import rows: %w", err)
	}
	return rows, nil
}

// MarkRunning 将任务置为 RUNNING；已结束的任务返回 false（重复投递时跳过）
func (dao *ImportDAO) MarkRunning(ctx context.Context, importID string) (bool, error) {
	result := dao.db.WithContext(ctx).
		Model(&entity.ImportJob{}).
		Where("id = ? AND status IN ?", importID, []string{entity.ImportStatusPending, entity.ImportStatusRunning}).
		Updates(map[string]interface{}{
			"status":     entity.ImportStatusRunning,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark import running: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetVendorZones 读取承运商的区域定义
func (dao *ImportDAO) GetVendorZones(ctx context.Context, vendorID int64) ([]model.ZoneRecord, error) {
	var vendor entity.Vendor
	err := dao.db.WithContext(ctx).Select("id", "zones").Where("id = ?", vendorID).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrVendorNotFound, vendorID)
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	var zones []model.ZoneRecord
	if err := json.Unmarshal(vendor.Zones, &zones); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidZones, err)
	}
	return zones, nil
}

// UpsertPincodes 分批写入邮编映射，(vendor_id, pincode) 冲突时覆盖
func (dao *ImportDAO) UpsertPincodes(ctx context.Context, vendorID int64, rows []model.PincodeRow) error {
	if len(rows) == 0 {
		return nil
	}

	records := make([]entity.PincodeZone, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.PincodeZone{
			VendorID: vendorID,
			Pincode:  row.Pincode,
			Zone:     row.Zone,
			State:    row.State,
			City:     row.City,
			ODA:      row.ODA,
		})
	}

	err := dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}, {Name: "pincode"}},
			DoUpdates: clause.AssignmentColumns([]string{"zone", "state", "city", "oda"}),
		}).
		CreateInBatches(records, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert pincodes: %w", err)
	}
	return nil
}

// Finish 记录导入结果
func (dao *ImportDAO) Finish(ctx context.Context, importID string, status string, imported, rejected int, rowErrors []string) error {
	errorsJSON, err := json.Marshal(rowErrors)
	if err != nil {
		return fmt.Errorf("failed to marshal row errors: %w", err)
	}

	now := time.Now()
	result := dao.db.WithContext(ctx).
		Model(&entity.ImportJob{}).
		Where("id = ?", importID).
		Updates(map[string]interface{}{
			"status":      status,
			"imported":    imported,
			"rejected":    rejected,
			"errors":      errorsJSON,
			"updated_at":  now,
			"finished_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to finish import job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrImportNotFound
	}
	return nil
}
