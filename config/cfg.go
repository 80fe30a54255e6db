package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jekabolt/grbpwr-deals/internal/analytics"
	httpapi "github.com/jekabolt/grbpwr-deals/internal/api/http"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-deals/internal/docstore"
	"github.com/jekabolt/grbpwr-deals/internal/runlock"
	"github.com/jekabolt/grbpwr-deals/internal/store"
	"github.com/jekabolt/grbpwr-deals/internal/usagereset"
	"github.com/jekabolt/grbpwr-deals/log"
	"github.com/spf13/viper"
)

const (
	DriverMySQL = "mysql"
	DriverMongo = "mongo"
)

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// Config represents the global configuration for the service.
type Config struct {
	Storage    StorageConfig     `mapstructure:"storage"`
	DB         store.Config      `mapstructure:"mysql"`
	Mongo      docstore.Config   `mapstructure:"mongo"`
	Redis      runlock.Config    `mapstructure:"redis"`
	Logger     log.Config        `mapstructure:"logger"`
	HTTP       httpapi.Config    `mapstructure:"http"`
	Auth       auth.Config       `mapstructure:"auth"`
	Dashboard  analytics.Config  `mapstructure:"dashboard"`
	UsageReset usagereset.Config `mapstructure:"usage_reset"`
}

// Validate checks the settings needed to boot the selected backend.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Storage, validation.By(func(any) error {
			return validation.Validate(c.Storage.Driver, validation.Required, validation.In(DriverMySQL, DriverMongo))
		})),
		validation.Field(&c.DB, validation.When(c.Storage.Driver == DriverMySQL, validation.By(func(any) error {
			return validation.Validate(c.DB.DSN, validation.Required.Error("mysql dsn is required"))
		}))),
		validation.Field(&c.Mongo, validation.When(c.Storage.Driver == DriverMongo, validation.By(func(any) error {
			return validation.ValidateStruct(&c.Mongo,
				validation.Field(&c.Mongo.URI, validation.Required),
				validation.Field(&c.Mongo.Database, validation.Required),
			)
		}))),
		validation.Field(&c.Redis, validation.By(func(any) error {
			return validation.Validate(c.Redis.URL, is.RequestURI)
		})),
		validation.Field(&c.HTTP, validation.By(func(any) error {
			return validation.Validate(c.HTTP.Port, validation.Required, is.Port)
		})),
	)
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn,
// and the common keys also have flat names such as MYSQL_DSN.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/grbpwr-deals")
		v.AddConfigPath("/etc/grbpwr-deals")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Build the MySQL DSN from individual env vars when it isn't set
	if config.DB.DSN == "" {
		if host := os.Getenv("MYSQL_HOST"); host != "" {
			port := os.Getenv("MYSQL_PORT")
			if port == "" {
				port = "3306"
			}
			user, password, database := os.Getenv("MYSQL_USER"), os.Getenv("MYSQL_PASSWORD"), os.Getenv("MYSQL_DATABASE")
			if user != "" && password != "" && database != "" {
				config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
					user, password, host, port, database)
			}
		}
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverMySQL)
	v.SetDefault("mysql.automigrate", true)
	v.SetDefault("mongo.connect_timeout", 10*time.Second)
	v.SetDefault("logger.level", 0)
	v.SetDefault("http.port", "8081")
	v.SetDefault("http.rate_limit_window", time.Minute)
	v.SetDefault("http.rate_limit_max", 120)
	v.SetDefault("auth.jwt_ttl", "24h")

	dc := analytics.DefaultConfig()
	v.SetDefault("dashboard.trend_months", dc.TrendMonths)
	v.SetDefault("dashboard.top_stores_limit", dc.TopStoresLimit)
	v.SetDefault("dashboard.max_trend_months", dc.MaxTrendMonths)
	v.SetDefault("dashboard.max_top_stores_limit", dc.MaxTopStoresLimit)
	v.SetDefault("dashboard.report_timeout", dc.ReportTimeout)

	uc := usagereset.DefaultConfig()
	v.SetDefault("usage_reset.enabled", uc.Enabled)
	v.SetDefault("usage_reset.timezone", uc.Timezone)
	v.SetDefault("usage_reset.lock_ttl", uc.LockTTL)
	v.SetDefault("usage_reset.run_timeout", uc.RunTimeout)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// Storage
	v.BindEnv("storage.driver", "STORAGE_DRIVER")

	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// MongoDB
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("mongo.connect_timeout", "MONGO_CONNECT_TIMEOUT")
	v.BindEnv("mongo.max_pool_size", "MONGO_MAX_POOL_SIZE")

	// Redis
	v.BindEnv("redis.url", "REDIS_URL")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.rate_limit_window", "HTTP_RATE_LIMIT_WINDOW")
	v.BindEnv("http.rate_limit_max", "HTTP_RATE_LIMIT_MAX")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")

	// Dashboard
	v.BindEnv("dashboard.trend_months", "DASHBOARD_TREND_MONTHS")
	v.BindEnv("dashboard.top_stores_limit", "DASHBOARD_TOP_STORES_LIMIT")
	v.BindEnv("dashboard.max_trend_months", "DASHBOARD_MAX_TREND_MONTHS")
	v.BindEnv("dashboard.max_top_stores_limit", "DASHBOARD_MAX_TOP_STORES_LIMIT")
	v.BindEnv("dashboard.report_timeout", "DASHBOARD_REPORT_TIMEOUT")

	// Usage reset
	v.BindEnv("usage_reset.enabled", "USAGE_RESET_ENABLED")
	v.BindEnv("usage_reset.timezone", "USAGE_RESET_TIMEZONE")
	v.BindEnv("usage_reset.lock_ttl", "USAGE_RESET_LOCK_TTL")
	v.BindEnv("usage_reset.run_timeout", "USAGE_RESET_RUN_TIMEOUT")
}
