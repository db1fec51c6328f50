package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"freightrate/internal/sync/business/pincode"
	"freightrate/internal/sync/domains"
	"freightrate/internal/sync/worker"
	"freightrate/pkg/config"
	"freightrate/pkg/infra/mysql"
	"freightrate/pkg/infra/redis"
	"freightrate/pkg/lmstfy"
	"freightrate/pkg/logger"
)

var configPath = flag.String("config", "./config/worker.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel, cfg.IsDev())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()
	zapLogger.Infof(ctx, "Config loaded: %s, env: %s", cfg.App.Name, cfg.App.Env)

	// 3. 初始化基础设施
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to open mysql: %v", err)
	}
	defer mysql.Close(db)

	rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to open redis: %v", err)
	}
	defer rdb.Close()

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to create lmstfy client: %v", err)
	}

	// 4. 组装业务 Handler
	importer := pincode.NewImporter(mysql.NewImportDAO(db), redis.NewPubSub(rdb), zapLogger)
	proc := domains.GetProcess(zapLogger, domains.NewHandlerMap(importer))

	// 5. 创建并启动 Manager
	mgr, err := worker.NewManagerInstance(cfg, lmstfyClient, proc, zapLogger)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	go func() {
		if err := mgr.Start(); err != nil {
			zapLogger.Errorf(ctx, "Manager start failed: %v", err)
		}
	}()
	zapLogger.Infof(ctx, "Worker started. Press Ctrl+C to shutdown.")

	// 6. 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	zapLogger.Infof(ctx, "Received signal: %v, shutting down worker...", sig)

	// 7. 优雅关闭 Manager
	mgr.Shutdown()
	zapLogger.Infof(ctx, "Worker exited gracefully")
}
