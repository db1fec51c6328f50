package job

import (
	"encoding/json"
	"time"
)

// Job lmstfy 消息体，结构与 model.PincodeImportJob 一致，业务数据延迟解析
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload Job 负载
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData 信封字段 + 原始业务数据
type JobPayloadData struct {
	RequestID   string          `json:"request_id"`
	SubmittedAt int64           `json:"submitted_at"`
	ActionType  string          `json:"action_type"` // 路由键
	ID          string          `json:"id"`
	Data        json.RawMessage `json:"data"`
}

// Meta 信封元数据，随 Handler 与处理结果传递
type Meta struct {
	RequestID   string `json:"request_id"`
	SubmittedAt int64  `json:"submitted_at"`
	ActionType  string `json:"action_type"`
	ID          string `json:"id"`
}

// QueueLatency 从 API 投递到 Worker 开始处理的耗时，未记录投递时间时返回 0
func (m *Meta) QueueLatency(now time.Time) time.Duration {
	if m.SubmittedAt <= 0 {
		return 0
	}
	d := now.Sub(time.UnixMilli(m.SubmittedAt))
	if d < 0 {
		return 0
	}
	return d
}
