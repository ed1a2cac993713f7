package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	BaseURL     string   `mapstructure:"base_url"`
	Timezone    string   `mapstructure:"timezone"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	DocsEnabled bool     `mapstructure:"docs_enabled"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver specific connection string. For sqlite the
// database field is used as the file path.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case "sqlite":
		return d.Database
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AuthConfig describes the external identity provider. Tokens are verified
// against its JWKS; the client credentials are used for code exchange.
type AuthConfig struct {
	ServerURL    string `mapstructure:"server_url"`
	Realm        string `mapstructure:"realm"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Issuer       string `mapstructure:"issuer"`
	Audience     string `mapstructure:"audience"`
	JWKSURL      string `mapstructure:"jwks_url"`
	Timeout      int    `mapstructure:"timeout_seconds"`
}

// RealmURL returns the OpenID base path of the configured realm.
func (a *AuthConfig) RealmURL() string {
	return fmt.Sprintf("%s/realms/%s", a.ServerURL, a.Realm)
}

func (a *AuthConfig) GetIssuer() string {
	if a.Issuer != "" {
		return a.Issuer
	}
	return a.RealmURL()
}

func (a *AuthConfig) GetJWKSURL() string {
	if a.JWKSURL != "" {
		return a.JWKSURL
	}
	return a.RealmURL() + "/protocol/openid-connect/certs"
}

func (a *AuthConfig) GetTimeout() time.Duration {
	return secondsOrDefault(a.Timeout, 10)
}

type BillingConfig struct {
	SecretKey       string            `mapstructure:"secret_key"`
	WebhookSecret   string            `mapstructure:"webhook_secret"`
	PriceIDs        map[string]string `mapstructure:"price_ids"`
	SuccessURL      string            `mapstructure:"success_url"`
	CancelURL       string            `mapstructure:"cancel_url"`
	PortalReturnURL string            `mapstructure:"portal_return_url"`
	Timeout         int               `mapstructure:"timeout_seconds"`
}

func (b *BillingConfig) GetTimeout() time.Duration {
	return secondsOrDefault(b.Timeout, 15)
}

type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout_seconds"`
	// PromptsDir overrides the embedded prompt templates file by file.
	PromptsDir string `mapstructure:"prompts_dir"`
}

func (l *LLMConfig) GetTimeout() time.Duration {
	return secondsOrDefault(l.Timeout, 45)
}

type EnrichmentConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout_seconds"`
}

func (e *EnrichmentConfig) GetTimeout() time.Duration {
	return secondsOrDefault(e.Timeout, 10)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	BurstPerMinute int  `mapstructure:"burst_per_minute"`
}

type QuotaConfig struct {
	DefaultDaily   int `mapstructure:"default_daily"`
	DefaultMonthly int `mapstructure:"default_monthly"`
}

type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

func secondsOrDefault(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}
