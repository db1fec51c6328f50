package etimport

import (
	"errors"
	"time"

	"freightrate/common/model"
)

// 错误定义
var (
	ErrInvalidImportID = errors.New("import ID cannot be empty")
	ErrNoRows          = errors.New("sheet has no data rows")
)

// Status 导入状态
type Status string

const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusDone    Status = "DONE"
	StatusFailed  Status = "FAILED"
)

// Finished 是否为终态
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusFailed
}

// Job 邮编表导入任务聚合根
type Job struct {
	ID         string
	VendorID   int64 // 0 表示全局目录
	Status     Status
	Total      int
	Imported   int
	Rejected   int
	Rows       []model.PincodeRow
	Errors     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time
}

// NewJob 创建导入任务（工厂方法）
func NewJob(id string, vendorID int64, rows []model.PincodeRow) (*Job, error) {
	if id == "" {
		return nil, ErrInvalidImportID
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	now := time.Now()
	return &Job{
		ID:        id,
		VendorID:  vendorID,
		Status:    StatusPending,
		Total:     len(rows),
		Rows:      rows,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyResult 用 Worker 推送的结果更新内存中的任务（领域行为）
func (j *Job) ApplyResult(n *model.ImportNotification) {
	j.Status = Status(n.Status)
	j.Imported = n.Imported
	j.Rejected = n.Rejected
	j.Errors = n.Errors
	j.UpdatedAt = time.Now()
}
