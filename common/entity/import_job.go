package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ImportJob 邮编表导入任务
type ImportJob struct {
	ID       string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	VendorID int64          `gorm:"column:vendor_id;not null;default:0;index:idx_vendor"`
	Status   string         `gorm:"column:status;type:varchar(16);not null;default:'PENDING'"`
	Total    int            `gorm:"column:total;not null;default:0"`
	Imported int            `gorm:"column:imported;not null;default:0"`
	Rejected int            `gorm:"column:rejected;not null;default:0"`
	Rows     datatypes.JSON `gorm:"column:row_data;type:json;not null"`
	Errors   datatypes.JSON `gorm:"column:errors;type:json"`

	CreatedAt  time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;not null"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

// TableName 指定表名
func (ImportJob) TableName() string {
	return "import_jobs"
}

// 导入状态常量
const (
	ImportStatusPending = "PENDING"
	ImportStatusRunning = "RUNNING"
	ImportStatusDone    = "DONE"
	ImportStatusFailed  = "FAILED"
)
