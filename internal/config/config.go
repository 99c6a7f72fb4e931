package config

import (
	"time"

	"github.com/maxviazov/subnets-service/internal/logger"
	"github.com/maxviazov/subnets-service/internal/pagination"
)

// Config is the complete service configuration.
//
// Sources, lowest precedence first: defaults, YAML file, APP_* environment.
type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Redis      RedisConfig         `mapstructure:"redis"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	// BaseURL prefixes self links; when empty the request scheme and host are used.
	BaseURL         string        `mapstructure:"base_url" validate:"omitempty,url"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	DBName   string `mapstructure:"db" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns int32  `mapstructure:"min_conns" validate:"min=0,ltefield=MaxConns"`
	// lifetimes are in seconds
	MaxConnLifetime   int  `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int  `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int  `mapstructure:"health_check_period"`
	Migrate           bool `mapstructure:"migrate"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db" validate:"min=0"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=0"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
}

// Link stores.
const (
	LinkStoreRedis  = "redis"
	LinkStoreMemory = "memory"
)

type PaginationConfig struct {
	DefaultPageSize int           `mapstructure:"default_page_size" validate:"min=1,ltefield=MaxPageSize"`
	MaxPageSize     int           `mapstructure:"max_page_size" validate:"min=1"`
	LinkTTL         time.Duration `mapstructure:"link_ttl" validate:"gt=0"`
	LinkStore       string        `mapstructure:"link_store" validate:"oneof=redis memory"`
}

// Bounds converts the page size settings for the paginator.
func (p PaginationConfig) Bounds() pagination.Bounds {
	return pagination.Bounds{DefaultSize: p.DefaultPageSize, MaxSize: p.MaxPageSize}
}
