package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore 验证码及其关联数据的存储
type OTPStore struct {
	rdb *redis.Client
}

// NewOTPStore 创建验证码存储
func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func otpKey(purpose, subject string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, subject)
}

func attemptsKey(purpose, subject string) string {
	return fmt.Sprintf("otp:%s:%s:attempts", purpose, subject)
}

// Save 保存记录（JSON），覆盖旧记录并清空尝试次数
func (s *OTPStore) Save(ctx context.Context, purpose, subject string, record interface{}, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal otp record failed: %w", err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, otpKey(purpose, subject), data, ttl)
		pipe.Del(ctx, attemptsKey(purpose, subject))
		return nil
	})
	return err
}

// Load 读取记录，不存在或已过期时返回 false
func (s *OTPStore) Load(ctx context.Context, purpose, subject string, dst interface{}) (bool, error) {
	data, err := s.rdb.Get(ctx, otpKey(purpose, subject)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal otp record failed: %w", err)
	}
	return true, nil
}

// IncrAttempts 记录一次校验失败，返回累计次数
func (s *OTPStore) IncrAttempts(ctx context.Context, purpose, subject string, ttl time.Duration) (int64, error) {
	key := attemptsKey(purpose, subject)
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		s.rdb.Expire(ctx, key, ttl)
	}
	return n, nil
}

// Delete 删除记录（验证成功后一次性失效）
func (s *OTPStore) Delete(ctx context.Context, purpose, subject string) error {
	return s.rdb.Del(ctx, otpKey(purpose, subject), attemptsKey(purpose, subject)).Err()
}
