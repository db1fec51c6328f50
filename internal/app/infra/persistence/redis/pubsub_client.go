package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PubSubClient Redis Pub/Sub 客户端封装
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 创建 Pub/Sub 客户端
func NewPubSubClient(rdb *redis.Client) *PubSubClient {
	return &PubSubClient{rdb: rdb}
}

// Subscription 已确认的订阅
type Subscription struct {
	sub *redis.PubSub
}

// Subscribe 订阅 channel，等到服务端确认后才返回
// Smart Wait 需要先订阅再投递任务，避免 Worker 在订阅建立前就发布了结果
func (c *PubSubClient) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	sub := c.rdb.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s failed: %w", channel, err)
	}
	return &Subscription{sub: sub}, nil
}

// Next 等待下一条消息，支持超时控制
func (s *Subscription) Next(ctx context.Context, timeout time.Duration) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case msg, ok := <-s.sub.Channel():
		if !ok {
			return "", fmt.Errorf("subscription closed")
		}
		return msg.Payload, nil
	case <-timeoutCtx.Done():
		return "", timeoutCtx.Err()
	}
}

// Close 取消订阅
func (s *Subscription) Close() error {
	return s.sub.Close()
}

// Publish 向指定 channel 发布消息
func (c *PubSubClient) Publish(ctx context.Context, channel string, message string) error {
	return c.rdb.Publish(ctx, channel, message).Err()
}
