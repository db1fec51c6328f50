package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"freightrate/internal/app/domains/modules/mdauth"
	"freightrate/internal/app/domains/modules/mdimport"
	"freightrate/internal/app/domains/modules/mdquote"
	"freightrate/internal/app/domains/modules/mdvendor"
	"freightrate/internal/app/domains/repo/rpcustomer"
	"freightrate/internal/app/domains/repo/rpimport"
	"freightrate/internal/app/domains/repo/rppincode"
	"freightrate/internal/app/domains/repo/rpquote"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/internal/app/domains/services/svauth"
	"freightrate/internal/app/domains/services/svimport"
	"freightrate/internal/app/domains/services/svquote"
	"freightrate/internal/app/domains/services/svvendor"
	"freightrate/internal/app/infra/persistence/redis"
	"freightrate/internal/app/pkg/idgen"
	"freightrate/internal/app/server/handlers/admin"
	"freightrate/internal/app/server/handlers/auth"
	"freightrate/internal/app/server/handlers/transporter"
	"freightrate/internal/app/server/routers"
	"freightrate/pkg/config"
	"freightrate/pkg/infra/mysql"
	infraredis "freightrate/pkg/infra/redis"
	"freightrate/pkg/lmstfy"
	"freightrate/pkg/logger"
)

// App API 服务依赖集合
type App struct {
	Engine *gin.Engine
}

// InitializeApp 初始化基础设施并组装应用，返回的 cleanup 释放连接
func InitializeApp(cfg *config.Config, log logger.Logger) (*App, func(), error) {
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql failed: %w", err)
	}

	rdb, err := infraredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = mysql.Close(db)
		return nil, nil, fmt.Errorf("open redis failed: %w", err)
	}

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		_ = rdb.Close()
		_ = mysql.Close(db)
		return nil, nil, fmt.Errorf("create lmstfy client failed: %w", err)
	}

	cleanup := func() {
		_ = rdb.Close()
		_ = mysql.Close(db)
	}
	return newApp(cfg, log, db, rdb, lmstfyClient), cleanup, nil
}

// newApp 按 Repo → Module → Service → Handler → Router 的顺序组装
func newApp(cfg *config.Config, log logger.Logger, db *gorm.DB, rdb *goredis.Client, publisher mdimport.Publisher) *App {
	// 1. Repo
	customerRepo := rpcustomer.NewCustomerRepository(db)
	vendorRepo := rpvendor.NewVendorRepository(db)
	pincodeRepo := rppincode.NewCachedRepository(rppincode.NewPincodeRepository(db), rdb, cfg.Cache.ZoneTTL, log)
	quoteRepo := rpquote.NewQuoteRepository(db)
	importRepo := rpimport.NewImportRepository(db)

	// 2. Module
	tokens := mdauth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authModule := mdauth.NewAuthModule(customerRepo, redis.NewOTPStore(rdb), mdauth.NewLogNotifier(log), tokens, cfg.Auth.OTPTTL)
	vendorModule := mdvendor.NewVendorModule(vendorRepo)
	engine := mdquote.NewEngine(mdquote.PolicyFromConfig(cfg.Quote))
	quoteModule := mdquote.NewQuoteModule(engine, mdquote.NewZoneResolver(pincodeRepo), quoteRepo)
	importModule := mdimport.NewImportModule(importRepo, publisher, redis.NewPubSubClient(rdb), cfg.Lmstfy.ImportQueue)

	// 3. Service
	ids := idgen.NewSnowflake(cfg.App.MachineID)
	authService := svauth.NewAuthService(authModule, ids, log)
	quoteService := svquote.NewQuoteService(authModule, vendorModule, quoteModule, log, cfg.Quote.HistoryLimit)
	importService := svimport.NewImportService(importModule, vendorModule, log)
	vendorService := svvendor.NewVendorService(vendorModule, importService, ids, log)

	// 4. Handler
	authHandler := auth.NewAuthHandler(authService)
	transporterHandler := transporter.NewTransporterHandler(quoteService, vendorService)
	adminHandler := admin.NewAdminHandler(vendorService, importService, authService, cfg.Server.MaxUploadMB<<20)

	// 5. Router
	r := routers.SetupRoutes(log, authService, authHandler, transporterHandler, adminHandler)
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	return &App{Engine: r}
}
