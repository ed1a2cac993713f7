package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/konqer/konqer-api/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Billing    sharedConfig.BillingConfig    `mapstructure:"billing"`
	LLM        sharedConfig.LLMConfig        `mapstructure:"llm"`
	Enrichment sharedConfig.EnrichmentConfig `mapstructure:"enrichment"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit"`
	Quota      sharedConfig.QuotaConfig      `mapstructure:"quota"`
	Pagination sharedConfig.PaginationConfig `mapstructure:"pagination"`
}

// Load reads configs/config.yaml (optional) and KONQER_* environment
// variables. A .env file in the working directory is loaded first.
func Load(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("KONQER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.docs_enabled", true)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "konqer")
	v.SetDefault("database.password", "konqer")
	v.SetDefault("database.database", "konqer")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.server_url", "http://localhost:8080")
	v.SetDefault("auth.realm", "konqer")
	v.SetDefault("auth.client_id", "konqer-api")
	v.SetDefault("auth.client_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("auth.jwks_url", "")
	v.SetDefault("auth.timeout_seconds", 10)

	// Secrets have empty defaults so AutomaticEnv can bind them on Unmarshal.
	v.SetDefault("billing.secret_key", "")
	v.SetDefault("billing.webhook_secret", "")

	v.SetDefault("billing.price_ids", map[string]string{
		"founding":       "price_founding_699eur",
		"monthly_single": "price_monthly_single_99eur",
		"monthly_bundle": "price_monthly_bundle_399eur",
		"annual_single":  "price_annual_single_990eur",
		"annual_bundle":  "price_annual_bundle_3990eur",
	})
	v.SetDefault("billing.success_url", "http://localhost:3000/dashboard?checkout=success")
	v.SetDefault("billing.cancel_url", "http://localhost:3000/pricing?checkout=canceled")
	v.SetDefault("billing.portal_return_url", "http://localhost:3000/dashboard")
	v.SetDefault("billing.timeout_seconds", 15)

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4-turbo-preview")
	v.SetDefault("llm.timeout_seconds", 45)
	v.SetDefault("llm.prompts_dir", "")

	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.base_url", "https://api.apollo.io/v1")
	v.SetDefault("enrichment.timeout_seconds", 10)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.burst_per_minute", 10)

	v.SetDefault("quota.default_daily", 100)
	v.SetDefault("quota.default_monthly", 3000)

	v.SetDefault("pagination.default_page_size", 20)
	v.SetDefault("pagination.max_page_size", 100)
}
