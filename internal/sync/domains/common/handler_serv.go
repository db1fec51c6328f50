package common

import (
	"context"

	"freightrate/internal/sync/domains/common/job"
	"freightrate/internal/sync/domains/common/response"
)

// HandlerServProc Handler 构造函数类型
type HandlerServProc func(ctx context.Context, meta *job.Meta, payload []byte) (HandlerServ, error)

// HandlerServ Handler 接口
type HandlerServ interface {
	GetProcess() *response.Response
}
