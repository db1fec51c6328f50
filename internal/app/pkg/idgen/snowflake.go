package idgen

import (
	"sync"
	"time"
)

// Generator 数字 ID 生成器（客户、承运商主键）
type Generator interface {
	NextID() int64
}

// Snowflake 简化的雪花 ID：秒级时间偏移 * 100000 + 机器号(2位) * 1000 + 序列号(3位)
type Snowflake struct {
	mu        sync.Mutex
	epoch     int64
	machineID int64
	sequence  int64
	lastTime  int64
	now       func() time.Time
}

const (
	maxMachineID = 99
	maxSequence  = 999
)

// NewSnowflake 创建生成器，machineID 超出 0-99 时置为 0
func NewSnowflake(machineID int64) *Snowflake {
	if machineID < 0 || machineID > maxMachineID {
		machineID = 0
	}
	return &Snowflake{
		epoch:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		machineID: machineID,
		now:       time.Now,
	}
}

// NextID 生成下一个 ID，同一秒内序列号用尽时等待下一秒
func (g *Snowflake) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().Unix()
	if now < g.lastTime {
		// 时钟回拨，沿用上次的时间继续递增
		now = g.lastTime
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) % (maxSequence + 1)
		if g.sequence == 0 {
			for now <= g.lastTime {
				time.Sleep(time.Millisecond)
				now = g.now().Unix()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	return (now-g.epoch)*100000 + g.machineID*1000 + g.sequence
}
