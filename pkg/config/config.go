package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置（apiserver / worker / freightctl 共用）
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Server  ServerConfig   `mapstructure:"server"`
	MySQL   MySQLConfig    `mapstructure:"mysql"`
	Redis   RedisConfig    `mapstructure:"redis"`
	Lmstfy  LmstfyConfig   `mapstructure:"lmstfy"`
	Auth    AuthConfig     `mapstructure:"auth"`
	Quote   QuoteConfig    `mapstructure:"quote"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Workers []WorkerConfig `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name      string `mapstructure:"name"`
	Env       string `mapstructure:"env"`
	LogLevel  string `mapstructure:"log_level"`
	MachineID int64  `mapstructure:"machine_id"` // 雪花 ID 机器号（0-99）
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Namespace   string `mapstructure:"namespace"`
	Token       string `mapstructure:"token"`
	ImportQueue string `mapstructure:"import_queue"` // 导入任务队列
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	OTPTTL    time.Duration `mapstructure:"otp_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

// QuoteConfig 报价引擎配置
type QuoteConfig struct {
	WeightRounding     string             `mapstructure:"weight_rounding"`      // ceil | none
	DefaultDivisors    map[string]float64 `mapstructure:"default_divisors"`     // 运输方式 -> 体积系数
	DefaultTransitDays map[string]float64 `mapstructure:"default_transit_days"` // 运输方式 -> 默认时效（天）
	DeliveryBufferDays int                `mapstructure:"delivery_buffer_days"`
	HistoryLimit       int                `mapstructure:"history_limit"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	ZoneTTL time.Duration `mapstructure:"zone_ttl"`
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// Load 从配置文件加载配置，环境变量 FREIGHT_<SECTION>_<KEY> 可覆盖文件中的值
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FREIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// Defaults 不读取文件，只返回默认值与环境变量覆盖后的配置（freightctl 离线命令使用）
func Defaults() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FREIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "freightrate")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.machine_id", 1)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("lmstfy.import_queue", "pincode_import")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.otp_ttl", 10*time.Minute)
	v.SetDefault("auth.issuer", "freightrate")
	v.SetDefault("quote.weight_rounding", "ceil")
	v.SetDefault("quote.default_divisors", map[string]float64{
		"road": 5000,
		"rail": 5000,
		"air":  6000,
		"ship": 6000,
	})
	v.SetDefault("quote.default_transit_days", map[string]float64{
		"road": 4,
		"rail": 5,
		"air":  1,
		"ship": 10,
	})
	v.SetDefault("quote.delivery_buffer_days", 2)
	v.SetDefault("quote.history_limit", 20)
	v.SetDefault("cache.zone_ttl", time.Hour)
}

// Validate 验证 API 服务所需配置
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if c.Lmstfy.Token == "" {
		return fmt.Errorf("lmstfy.token is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret must be at least 16 characters")
	}
	switch c.Quote.WeightRounding {
	case "ceil", "none":
	default:
		return fmt.Errorf("quote.weight_rounding must be ceil or none, got %q", c.Quote.WeightRounding)
	}
	return nil
}

// ValidateWorker 验证 Worker 所需配置
func (c *Config) ValidateWorker() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	for _, w := range c.Workers {
		if w.QueueName == "" {
			return fmt.Errorf("worker %s: queue_name is required", w.Name)
		}
		if w.Subscriber.Threads <= 0 || w.Processor.Threads <= 0 {
			return fmt.Errorf("worker %s: subscriber/processor threads must be positive", w.Name)
		}
	}
	return nil
}

// IsDev 是否为开发环境
func (c *Config) IsDev() bool {
	return c.App.Env == "dev"
}
