package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codecraft/institute-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config 애플리케이션 설정
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	CORS      CORSConfig      `yaml:"cors"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Sweep     SweepConfig     `yaml:"sweep"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port            int           `yaml:"port"`
	Mode            string        `yaml:"mode"` // development, production
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig MySQL 설정
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 초
}

// GetDSN MySQL DSN 생성
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// RedisConfig Redis 설정
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Channel  string `yaml:"channel"` // 결제 이벤트 발행 채널
}

// JWTConfig 토큰 검증 설정
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// CORSConfig CORS 설정
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"` // 콤마 구분
}

// GatewayConfig SSLCommerz 설정
type GatewayConfig struct {
	StoreID         string        `yaml:"store_id"`
	StorePassword   string        `yaml:"store_password"`
	Sandbox         bool          `yaml:"sandbox"`
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	SuccessURL      string        `yaml:"success_url"`
	FailURL         string        `yaml:"fail_url"`
	CancelURL       string        `yaml:"cancel_url"`
	IPNURL          string        `yaml:"ipn_url"`
	IPNAllowedIPs   string        `yaml:"ipn_allowed_ips"` // 콤마 구분 IP/CIDR, 비어 있으면 제한 없음
	ProductCategory string        `yaml:"product_category"`
}

// SweepConfig 오래된 pending 결제 정리 작업 설정
type SweepConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Schedule   string        `yaml:"schedule"` // 초 단위 포함 cron 식
	StaleAfter time.Duration `yaml:"stale_after"`
	BatchSize  int           `yaml:"batch_size"`
}

// RateLimitConfig 요청 제한 설정
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	IPNPerMinute      int  `yaml:"ipn_per_minute"`
	InitiatePerMinute int  `yaml:"initiate_per_minute"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load YAML 설정 파일을 읽어 환경 변수를 치환한 뒤 기본값을 채우고 검증한다
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), cfg); err != nil {
		return nil, fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "development"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 50
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "institute"
	}
	if c.Gateway.Timeout <= 0 {
		c.Gateway.Timeout = 15 * time.Second
	}
	if c.Sweep.Schedule == "" {
		c.Sweep.Schedule = "0 */10 * * * *"
	}
	if c.Sweep.StaleAfter <= 0 {
		c.Sweep.StaleAfter = 24 * time.Hour
	}
	if c.Sweep.BatchSize <= 0 {
		c.Sweep.BatchSize = 100
	}
	if c.RateLimit.IPNPerMinute <= 0 {
		c.RateLimit.IPNPerMinute = 300
	}
	if c.RateLimit.InitiatePerMinute <= 0 {
		c.RateLimit.InitiatePerMinute = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate 필수 값 확인
func (c *Config) Validate() error {
	var problems []string
	if c.JWT.Secret == "" {
		problems = append(problems, "jwt.secret")
	}
	if c.Gateway.StoreID == "" {
		problems = append(problems, "gateway.store_id")
	}
	if c.Gateway.StorePassword == "" {
		problems = append(problems, "gateway.store_password")
	}
	if c.Gateway.IPNURL == "" {
		problems = append(problems, "gateway.ipn_url")
	}
	if len(problems) > 0 {
		return errors.New("필수 설정 누락: " + strings.Join(problems, ", "))
	}
	if !c.IsDevelopment() && c.Gateway.Sandbox {
		logger.GetLogger().Warn().Msg("gateway sandbox mode enabled outside development")
	}
	return nil
}

// IsDevelopment 개발 모드 여부
func (c *Config) IsDevelopment() bool {
	return c.Server.Mode == "development" || c.Server.Mode == "local"
}

// LogResolved logs the effective non-secret configuration
func LogResolved(c *Config) {
	log := logger.GetLogger()
	log.Info().
		Int("port", c.Server.Port).
		Str("mode", c.Server.Mode).
		Str("db_host", c.Database.Host).
		Str("db_name", c.Database.DBName).
		Str("redis", fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)).
		Bool("gateway_sandbox", c.Gateway.Sandbox).
		Str("gateway_base_url", c.Gateway.BaseURL).
		Dur("gateway_timeout", c.Gateway.Timeout).
		Bool("sweep_enabled", c.Sweep.Enabled).
		Str("sweep_schedule", c.Sweep.Schedule).
		Dur("sweep_stale_after", c.Sweep.StaleAfter).
		Bool("rate_limit_enabled", c.RateLimit.Enabled).
		Msg("configuration resolved")
}
