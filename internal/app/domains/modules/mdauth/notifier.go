package mdauth

import (
	"context"

	"freightrate/pkg/logger"
)

// Notifier 验证码投递
type Notifier interface {
	SendOTP(ctx context.Context, email, purpose, code string) error
}

// LogNotifier 将验证码写入日志（未接入邮件/短信通道时使用）
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier 创建 LogNotifier
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// SendOTP 记录验证码
func (n *LogNotifier) SendOTP(ctx context.Context, email, purpose, code string) error {
	n.logger.Infof(ctx, "[OTP] purpose=%s email=%s code=%s", purpose, email, code)
	return nil
}
