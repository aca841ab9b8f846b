// Package config загружает конфигурацию из config.toml и переменных окружения.
// Переменные окружения (и .env файл, если он есть) перекрывают значения из файла.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrParseEnv возвращается при некорректных переменных окружения
	ErrParseEnv = errors.New("config: failed to parse environment")

	// ErrInvalidConfig возвращается, если значения не прошли проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Auth        AuthConfig        `toml:"auth"`
	UserService UserServiceConfig `toml:"userservice"`
	RabbitMQ    RabbitMQConfig    `toml:"rabbitmq"`
	Lock        LockConfig        `toml:"lock"`
	Redis       RedisConfig       `toml:"redis"`
	Catalog     CatalogConfig     `toml:"catalog"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
}

// ServerConfig таймауты задаются в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
}

// UserServiceConfig Timeout в секундах
type UserServiceConfig struct {
	URL     string `toml:"url" env:"USER_SERVICE_URL"`
	Timeout int    `toml:"timeout" env:"USER_SERVICE_TIMEOUT"`
}

// RabbitMQConfig при Enabled = false события не публикуются
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled" env:"RABBITMQ_ENABLED"`
	URL      string `toml:"url" env:"RABBITMQ_URL"`
	Exchange string `toml:"exchange" env:"RABBITMQ_EXCHANGE"`
}

// LockConfig Backend: local (один экземпляр сервиса) или redis
type LockConfig struct {
	Backend     string `toml:"backend" env:"LOCK_BACKEND"`
	TimeoutMs   int    `toml:"timeout_ms" env:"LOCK_TIMEOUT_MS"`
	TTLSeconds  int    `toml:"ttl_seconds" env:"LOCK_TTL_SECONDS"`
	RedisPrefix string `toml:"redis_prefix" env:"LOCK_REDIS_PREFIX"`
}

func (c LockConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c LockConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

// CatalogConfig кэш длительностей услуг; CacheSize = 0 отключает кэш.
// Пока кэш включен, измененная в каталоге длительность услуги может применяться
// к новым записям со старым значением до cache_ttl_seconds.
type CatalogConfig struct {
	CacheSize       int `toml:"cache_size" env:"CATALOG_CACHE_SIZE"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds" env:"CATALOG_CACHE_TTL_SECONDS"`
}

func (c CatalogConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RateLimitConfig лимит запросов с одного IP на публичные маршруты создания записей
type RateLimitConfig struct {
	Enabled        bool    `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RPS            float64 `toml:"rps" env:"RATE_LIMIT_RPS"`
	Burst          int     `toml:"burst" env:"RATE_LIMIT_BURST"`
	IdleTTLSeconds int     `toml:"idle_ttl_seconds" env:"RATE_LIMIT_IDLE_TTL_SECONDS"`
	// TrustedProxies адреса прокси, которым доверяем X-Forwarded-For; пусто - берем адрес соединения
	TrustedProxies []string `toml:"trusted_proxies" env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`
}

func (c RateLimitConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLSeconds) * time.Second
}

// Load читает path, затем .env и переменные окружения, заполняет пропуски значениями по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseEnv, err)
	}

	cfg.Lock.Backend = strings.ToLower(strings.TrimSpace(cfg.Lock.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	switch c.Lock.Backend {
	case LockBackendLocal:
	case LockBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis lock backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown lock.backend %q", ErrInvalidConfig, c.Lock.Backend)
	}
	if c.Lock.TimeoutMs <= 0 {
		return fmt.Errorf("%w: lock.timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.Lock.TTLSeconds <= 0 {
		return fmt.Errorf("%w: lock.ttl_seconds must be positive", ErrInvalidConfig)
	}
	if c.Catalog.CacheSize < 0 {
		return fmt.Errorf("%w: catalog.cache_size must not be negative", ErrInvalidConfig)
	}
	if c.Catalog.CacheSize > 0 && c.Catalog.CacheTTLSeconds <= 0 {
		return fmt.Errorf("%w: catalog.cache_ttl_seconds must be positive when cache is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit.rps and ratelimit.burst must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && c.RateLimit.IdleTTLSeconds <= 0 {
		return fmt.Errorf("%w: ratelimit.idle_ttl_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "queue-service",
		},
		UserService: UserServiceConfig{Timeout: 5},
		RabbitMQ:    RabbitMQConfig{Exchange: "appointments"},
		Lock: LockConfig{
			Backend:     LockBackendLocal,
			TimeoutMs:   3000,
			TTLSeconds:  10,
			RedisPrefix: "queue:lock:worker:",
		},
		Catalog: CatalogConfig{
			CacheSize:       256,
			CacheTTLSeconds: 60,
		},
		RateLimit: RateLimitConfig{
			RPS:            5,
			Burst:          10,
			IdleTTLSeconds: 300,
		},
	}
}
