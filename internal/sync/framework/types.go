package framework

import (
	"time"

	"github.com/bitleak/lmstfy/client"
)

// Message 从队列拉取到的一条导入任务消息
type Message struct {
	ID         string
	Queue      string
	Data       []byte
	ReceivedAt time.Time // Subscriber 拉取到消息的时间
}

// toJob 转换为业务处理函数使用的 lmstfy Job
func (m *Message) toJob() *client.Job {
	return &client.Job{
		ID:    m.ID,
		Queue: m.Queue,
		Data:  m.Data,
	}
}

// buffered 消息在缓冲通道中等待的时长
func (m *Message) buffered(now time.Time) time.Duration {
	if m.ReceivedAt.IsZero() {
		return 0
	}
	return now.Sub(m.ReceivedAt)
}
