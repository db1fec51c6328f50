package framework

import (
	"time"

	"freightrate/pkg/config"
)

// 默认值，配置缺省或非法时使用
const (
	defaultConsumeTimeout = 3 * time.Second
	defaultTTR            = 2 * time.Minute
	defaultErrorBackoff   = time.Second
	defaultProcessTimeout = 5 * time.Minute
)

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	QueueName    string
	Concurrency  int           // 并发拉取数
	Timeout      time.Duration // 单次拉取的阻塞时长
	TTR          time.Duration // 未 ACK 的消息在 TTR 后重新投递，需大于导入耗时
	Rate         time.Duration // 拉取间隔
	ErrorBackoff time.Duration
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Concurrency int
	BufferSize  int           // Subscriber 与 Processor 之间的缓冲
	Timeout     time.Duration // 单条消息处理超时（整张邮编表的导入）
}

// FromWorkerConfig 将 YAML 中的 worker 配置转换为框架配置并补齐默认值
func FromWorkerConfig(w config.WorkerConfig) (*SubscriberConfig, *ProcessorConfig) {
	sub := &SubscriberConfig{
		QueueName:    w.QueueName,
		Concurrency:  atLeastOne(w.Subscriber.Threads),
		Timeout:      orDefault(w.Subscriber.Timeout, defaultConsumeTimeout),
		TTR:          orDefault(w.Subscriber.TTR, defaultTTR),
		Rate:         w.Subscriber.Rate,
		ErrorBackoff: orDefault(w.Subscriber.ErrorBackoff, defaultErrorBackoff),
	}
	proc := &ProcessorConfig{
		Concurrency: atLeastOne(w.Processor.Threads),
		BufferSize:  w.Processor.BufferSize,
		Timeout:     orDefault(w.Processor.Timeout, defaultProcessTimeout),
	}
	if proc.BufferSize < 0 {
		proc.BufferSize = 0
	}
	// lmstfy 按秒计时，不足 1 秒的拉取超时会变成非阻塞轮询
	if sub.Timeout < time.Second {
		sub.Timeout = time.Second
	}
	return sub, proc
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
