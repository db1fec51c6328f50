package response

import (
	"freightrate/internal/sync/domains/common/job"
)

const (
	ImportResultSuccess = "SUCCESS"
	ImportResultFailed  = "FAILED"
	ImportResultSkipped = "SKIPPED"
)

// ImportResult 导入任务处理结果
type ImportResult struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Imported int      `json:"imported"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// Set 实现 ResultI 接口
func (r *ImportResult) Set(meta *job.Meta, err error) {
	r.ID = meta.ID
	switch {
	case err != nil:
		r.Status = ImportResultFailed
	case r.Status == "":
		r.Status = ImportResultSuccess
	}
}

// GetStatus 实现 ResultI 接口
func (r *ImportResult) GetStatus() string {
	return r.Status
}
