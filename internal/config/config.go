package config

import (
	"github.com/maxviazov/storefront-catalog/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New after defaults
	HTTP     HTTPConfig          `mapstructure:"http"`
	API      APIConfig           `mapstructure:"api"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Mongo    MongoConfig         `mapstructure:"mongo"`
	Settings SettingsConfig      `mapstructure:"settings"`
}

type AppConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Version   string `mapstructure:"version"`
	Env       string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port      int    `mapstructure:"port" validate:"min=1,max=65535"`
	PublicURL string `mapstructure:"public_url" validate:"omitempty,url"`
}

// HTTPConfig timeouts are in seconds.
type HTTPConfig struct {
	ReadTimeout     int `mapstructure:"read_timeout" validate:"min=1"`
	WriteTimeout    int `mapstructure:"write_timeout" validate:"min=1"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=1"`
}

// APIConfig controls the public catalog API. When Enabled is false only
// health, metrics and auth routes are mounted.
type APIConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	DefaultPageSize int  `mapstructure:"default_page_size" validate:"min=1"`
	MaxPageSize     int  `mapstructure:"max_page_size" validate:"min=1,max=500,gtefield=DefaultPageSize"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"dbname" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0,ltefield=MaxConns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	ConnectAttempts   int    `mapstructure:"connect_attempts" validate:"min=1"`
}

type MongoConfig struct {
	URI             string `mapstructure:"uri"`
	Database        string `mapstructure:"database"`
	ConnectAttempts int    `mapstructure:"connect_attempts" validate:"min=1"`
}

// SettingsConfig selects where named plugin settings are read from.
type SettingsConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=postgres mongo"`
}
