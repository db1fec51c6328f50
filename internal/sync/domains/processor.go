package domains

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"freightrate/internal/sync/domains/common"
	"freightrate/internal/sync/domains/common/job"
	"freightrate/internal/sync/domains/common/response"
	"freightrate/pkg/lmstfyx"
	"freightrate/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
func GetProcess(log logger.Logger, handlers HandlerMap) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		meta, bizPayload, err := parseJob(lmstfyJob)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: job_id=%s, err=%v", lmstfyJob.ID, err)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 2. 注入 TraceID 到 Context
		ctx = logger.WithTraceID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, id=%s, queued=%v",
			meta.ActionType, meta.ID, meta.QueueLatency(startTime))

		// 3. 从 HandlerMap 获取 Handler
		factory, ok := handlers[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 4. 调用 Handler（捕获 panic）
		resp := runHandler(ctx, factory, meta, bizPayload, log)

		log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))
		return resp
	}
}

func runHandler(ctx context.Context, factory common.HandlerServProc, meta *job.Meta, payload []byte, log logger.Logger) (resp *lmstfyx.JobResp) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
			resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}
	}()

	handler, err := factory(ctx, meta, payload)
	if err != nil {
		log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
	}

	return doJobReport(ctx, handler.GetProcess(), log)
}

// parseJob 解析 lmstfy Job 标准结构
func parseJob(lmstfyJob *client.Job) (*job.Meta, []byte, error) {
	var standardJob job.Job
	if err := json.Unmarshal(lmstfyJob.Data, &standardJob); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if standardJob.Payload == nil || standardJob.Payload.Data == nil {
		return nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}

	data := standardJob.Payload.Data
	meta := &job.Meta{
		RequestID:   data.RequestID,
		SubmittedAt: data.SubmittedAt,
		ActionType:  data.ActionType,
		ID:          data.ID,
	}
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}

	return meta, data.Data, nil
}

// doJobReport 根据 Response 判断 ACK/Bury/Release
func doJobReport(ctx context.Context, resp *response.Response, log logger.Logger) *lmstfyx.JobResp {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "[doJobReport] marshal response failed: %v", err)
		data = nil
	}

	action := lmstfyx.JobRespStatusSuccess
	if resp.Error != nil {
		action = lmstfyx.JobRespStatusBury
		if resp.Error.Retryable {
			action = lmstfyx.JobRespStatusRelease
		}
		log.Warnf(ctx, "[doJobReport] job failed: retryable=%v, err=%s, details=%s",
			resp.Error.Retryable, resp.Error.Message, resp.Error.DevDetails)
	}

	return &lmstfyx.JobResp{Action: action, Data: data}
}
