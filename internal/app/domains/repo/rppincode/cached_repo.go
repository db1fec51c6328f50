package rppincode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etpincode"
	"freightrate/pkg/logger"
)

// notFoundMarker 缓存中表示“邮编不存在”的占位值
const notFoundMarker = "-"

// CachedRepository 带 Redis 缓存的邮编目录
// key: pincode:zone:{vendor}:{version}:{pincode}，导入完成后 Worker 递增 version 使旧 key 失效
type CachedRepository struct {
	next   PincodeRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedRepository 创建带缓存的邮编目录仓储
func NewCachedRepository(next PincodeRepository, rdb *redis.Client, ttl time.Duration, log logger.Logger) PincodeRepository {
	return &CachedRepository{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: log,
	}
}

// Lookup 先查缓存，未命中时回源并写回（包括不存在的结果）
// Redis 异常时降级为直接查库
func (r *CachedRepository) Lookup(ctx context.Context, vendorID int64, pincode string) (*etpincode.Entry, error) {
	key, err := r.key(ctx, vendorID, pincode)
	if err != nil {
		r.logger.Warnf(ctx, "[PincodeCache] read version failed, bypass cache: vendor=%d, err=%v", vendorID, err)
		return r.next.Lookup(ctx, vendorID, pincode)
	}

	cached, err := r.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if cached == notFoundMarker {
			return nil, etpincode.ErrNotFound
		}
		var entry etpincode.Entry
		if jsonErr := json.Unmarshal([]byte(cached), &entry); jsonErr == nil {
			return &entry, nil
		}
	case !errors.Is(err, redis.Nil):
		r.logger.Warnf(ctx, "[PincodeCache] get failed, bypass cache: key=%s, err=%v", key, err)
		return r.next.Lookup(ctx, vendorID, pincode)
	}

	entry, err := r.next.Lookup(ctx, vendorID, pincode)
	if err != nil && !errors.Is(err, etpincode.ErrNotFound) {
		return nil, err
	}

	value := notFoundMarker
	if entry != nil {
		data, _ := json.Marshal(entry)
		value = string(data)
	}
	if setErr := r.rdb.Set(ctx, key, value, r.ttl).Err(); setErr != nil {
		r.logger.Warnf(ctx, "[PincodeCache] set failed: key=%s, err=%v", key, setErr)
	}
	return entry, err
}

func (r *CachedRepository) key(ctx context.Context, vendorID int64, pincode string) (string, error) {
	ver, err := r.rdb.Get(ctx, model.PincodeCacheVersionKey(vendorID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("pincode:zone:%d:%d:%s", vendorID, ver, pincode), nil
}
