package mdimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etimport"
	"freightrate/internal/app/domains/repo/rpimport"
	"freightrate/internal/app/infra/persistence/redis"
	"freightrate/pkg/logger"
)

// Publisher 任务队列发布接口
type Publisher interface {
	Publish(ctx context.Context, queue string, payload interface{}) (string, error)
}

// ImportModule 邮编导入模块
// 职责：
// 1. 导入任务落库
// 2. 构造标准化消息并投递到 Worker 队列
// 3. 约定结果频道并等待 Worker 推送（Smart Wait）
type ImportModule struct {
	importRepo rpimport.ImportRepository
	publisher  Publisher
	pubsub     *redis.PubSubClient
	queueName  string
}

// NewImportModule 创建导入模块
func NewImportModule(importRepo rpimport.ImportRepository, publisher Publisher, pubsub *redis.PubSubClient, queueName string) *ImportModule {
	return &ImportModule{
		importRepo: importRepo,
		publisher:  publisher,
		pubsub:     pubsub,
		queueName:  queueName,
	}
}

// CreateJob 保存导入任务
func (m *ImportModule) CreateJob(ctx context.Context, job *etimport.Job) error {
	return m.importRepo.Create(ctx, job)
}

// GetJob 查询导入任务
func (m *ImportModule) GetJob(ctx context.Context, id string) (*etimport.Job, error) {
	return m.importRepo.GetByID(ctx, id)
}

// PublishImportJob 投递导入任务，行数据不进入消息体，由 Worker 从 import_jobs 读取
func (m *ImportModule) PublishImportJob(ctx context.Context, job *etimport.Job) error {
	requestID := logger.TraceID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	message := model.PincodeImportJob{
		Payload: model.PincodeImportPayload{
			Data: model.PincodeImportData{
				RequestID:   requestID,
				SubmittedAt: time.Now().UnixMilli(),
				ActionType:  model.ActionTypePincodeImport,
				ID:          job.ID,
				Data: model.PincodeImportBusinessData{
					ImportID: job.ID,
					VendorID: job.VendorID,
				},
			},
		},
	}
	if _, err := m.publisher.Publish(ctx, m.queueName, message); err != nil {
		return fmt.Errorf("publish import job failed: %w", err)
	}
	return nil
}

// Submit 投递导入任务，wait>0 时在投递前订阅结果频道并等待（Smart Wait）
// 返回 nil 通知表示未等待或等待超时，任务仍在处理中
func (m *ImportModule) Submit(ctx context.Context, job *etimport.Job, wait time.Duration) (*model.ImportNotification, error) {
	if wait <= 0 {
		return nil, m.PublishImportJob(ctx, job)
	}

	// 先订阅再投递，避免 Worker 在订阅生效前完成而丢失通知
	waiter, err := m.SubscribeResult(ctx, job.ID)
	if err != nil {
		return nil, fmt.Errorf("subscribe import result failed: %w", err)
	}
	defer waiter.Close()

	if err := m.PublishImportJob(ctx, job); err != nil {
		return nil, err
	}

	n, err := waiter.Wait(ctx, wait)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, nil
	}
	return n, err
}

// ResultWaiter 导入结果等待器
type ResultWaiter struct {
	sub *redis.Subscription
}

// SubscribeResult 订阅导入结果频道（需在投递任务前调用）
func (m *ImportModule) SubscribeResult(ctx context.Context, importID string) (*ResultWaiter, error) {
	sub, err := m.pubsub.Subscribe(ctx, model.ImportResultChannel(importID))
	if err != nil {
		return nil, err
	}
	return &ResultWaiter{sub: sub}, nil
}

// Wait 等待 Worker 推送的结果，超时返回 context.DeadlineExceeded
func (w *ResultWaiter) Wait(ctx context.Context, timeout time.Duration) (*model.ImportNotification, error) {
	payload, err := w.sub.Next(ctx, timeout)
	if err != nil {
		return nil, err
	}
	var n model.ImportNotification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return nil, fmt.Errorf("unmarshal import notification failed: %w", err)
	}
	return &n, nil
}

// Close 取消订阅
func (w *ResultWaiter) Close() error {
	return w.sub.Close()
}
