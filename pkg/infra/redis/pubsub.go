package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"freightrate/common/model"
)

// PubSub Worker 侧的 Redis 通知客户端
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例
func NewPubSub(client *redis.Client) *PubSub {
	return &PubSub{client: client}
}

// PublishImportComplete 发布导入完成通知
func (p *PubSub) PublishImportComplete(ctx context.Context, notification *model.ImportNotification) error {
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	channel := model.ImportResultChannel(notification.ImportID)
	if err := p.client.Publish(ctx, channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// BumpPincodeVersion 递增承运商邮编缓存版本，使已缓存的区域解析结果失效
func (p *PubSub) BumpPincodeVersion(ctx context.Context, vendorID int64) (int64, error) {
	ver, err := p.client.Incr(ctx, model.PincodeCacheVersionKey(vendorID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump pincode cache version: %w", err)
	}
	return ver, nil
}
