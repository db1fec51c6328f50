package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"freightrate/internal/sync/framework"
	"freightrate/pkg/config"
	"freightrate/pkg/lmstfyx"
	"freightrate/pkg/logger"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance Manager 实例
type ManagerInstance struct {
	ctx        context.Context
	cfg        *config.Config
	source     framework.MessageSource
	proc       lmstfyx.Proc
	workers    []Worker
	closing    *atomic.Bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	mu         sync.RWMutex
	logger     logger.Logger
}

// NewManagerInstance 创建 Manager
// source: 消息源（lmstfy 客户端），proc: 按 action_type 路由的处理函数
func NewManagerInstance(cfg *config.Config, source framework.MessageSource, proc lmstfyx.Proc, log logger.Logger) (*ManagerInstance, error) {
	if source == nil || proc == nil {
		return nil, fmt.Errorf("message source and proc are required")
	}

	return &ManagerInstance{
		ctx:        context.Background(),
		cfg:        cfg,
		source:     source,
		proc:       proc,
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		workers:    make([]Worker, 0, len(cfg.Workers)),
		logger:     log,
	}, nil
}

// Start 启动 Manager，阻塞直到 Shutdown
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	// 1. 加载所有 Worker
	m.mu.Lock()
	if m.closing.Load() {
		m.mu.Unlock()
		return fmt.Errorf("manager is closing")
	}
	m.loadWorkers()
	workers := m.workers
	// 在持锁期间登记，保证 Shutdown 的 wg.Wait 能看到所有 Worker
	m.wg.Add(len(workers))
	m.mu.Unlock()
	m.logger.Infof(m.ctx, "[Manager] All workers loaded, count: %d", len(workers))

	// 2. 启动所有 Worker（每个 Worker 在独立 goroutine）
	for _, w := range workers {
		w := w
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}

	// 3. 阻塞等待退出信号
	<-m.shutdownCh
	return nil
}

// Shutdown 优雅退出，可重复调用
func (m *ManagerInstance) Shutdown() {
	if !m.closing.CompareAndSwap(false, true) {
		return
	}
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	m.mu.RLock()
	workers := m.workers
	m.mu.RUnlock()

	// 1. 所有 Worker 安全退出
	for _, w := range workers {
		m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", w.GetName())
		w.Shutdown()
	}

	// 2. 等待所有 Worker 退出
	m.wg.Wait()

	// 3. 关闭信号通道
	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}

// loadWorkers 按配置创建 Worker
func (m *ManagerInstance) loadWorkers() {
	for _, workerCfg := range m.cfg.Workers {
		subCfg, procCfg := framework.FromWorkerConfig(workerCfg)

		m.workers = append(m.workers, NewWorkerInstance(
			m.ctx,
			workerCfg.Name,
			subCfg,
			procCfg,
			m.source,
			m.proc,
			m.logger,
		))
	}
}
