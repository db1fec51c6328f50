package framework

import (
	"context"
	"time"
)

// MessageSource 消息源（生产环境为 lmstfy，测试中为内存队列）
type MessageSource interface {
	// Consume 阻塞拉取，timeout 内无消息时返回 nil, nil
	Consume(queue string, timeout time.Duration, ttr time.Duration) (*Message, error)

	// Ack 删除已处理的消息
	Ack(queue string, jobID string) error
}

// ProcessorFunc 函数链中的一步
type ProcessorFunc func(ctx context.Context) error
