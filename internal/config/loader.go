package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, overlays APP_* environment variables and
// validates the result. A .env file next to the process is honored if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)

	// Secrets usually come from the platform's own variable names.
	_ = v.BindEnv("postgres.user", "APP_POSTGRES_USER", "POSTGRES_USER", "DB_USER")
	_ = v.BindEnv("postgres.password", "APP_POSTGRES_PASSWORD", "POSTGRES_PASSWORD", "DB_PASSWORD")
	_ = v.BindEnv("postgres.dbname", "APP_POSTGRES_DB", "POSTGRES_DB", "DB_NAME")

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	if config.Settings.Backend == "mongo" && config.Mongo.URI == "" {
		return nil, errors.New("config validation error: mongo.uri is required when settings.backend is mongo")
	}
	return &config, nil
}

// setDefaults also registers every key with viper, which is what lets
// AutomaticEnv override keys absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront-catalog")
	v.SetDefault("app.version", "0.0.1")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.public_url", "")

	v.SetDefault("http.read_timeout", 10)
	v.SetDefault("http.write_timeout", 10)
	v.SetDefault("http.shutdown_timeout", 15)

	v.SetDefault("api.enabled", true)
	v.SetDefault("api.default_page_size", 20)
	v.SetDefault("api.max_page_size", 100)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.connect_attempts", 5)

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "storefront")
	v.SetDefault("mongo.connect_attempts", 5)

	v.SetDefault("settings.backend", "postgres")
}
