package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nurpe/fieldops-docs/internal/pricing"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type DocsConfig struct {
	CompanyName    string
	LogoPath       string
	ArchiveDir     string
	DefaultTaxRate float64
	PausePolicy    timecalc.PausePolicy
	PageSize       string
	Compress       bool
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Docs        DocsConfig
}

var configFile string

// SetConfigFile overrides the app.env lookup with an explicit file.
func SetConfigFile(path string) {
	configFile = path
}

func Load() (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("env")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./deploy")
		v.AddConfigPath("./internal/config")
	}
	v.AutomaticEnv()

	v.SetDefault("DOCS_DEFAULT_TAX_RATE", "23")
	v.SetDefault("PDF_COMPRESS", true)
	v.SetDefault("PDF_PAGE_SIZE", "A4")
	v.SetDefault("CACHE_TTL", "24h")

	if err := v.ReadInConfig(); err != nil && configFile != "" {
		return nil, fmt.Errorf("read config %s: %w", configFile, err)
	}

	taxRate, err := pricing.ParseTaxRate(v.GetString("DOCS_DEFAULT_TAX_RATE"))
	if err != nil {
		return nil, fmt.Errorf("DOCS_DEFAULT_TAX_RATE: %w", err)
	}
	policy, err := timecalc.ParsePausePolicy(v.GetString("PAUSE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("PAUSE_POLICY: %w", err)
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Docs: DocsConfig{
			CompanyName:    v.GetString("DOCS_COMPANY_NAME"),
			LogoPath:       v.GetString("DOCS_LOGO_PATH"),
			ArchiveDir:     v.GetString("DOCS_ARCHIVE_DIR"),
			DefaultTaxRate: taxRate,
			PausePolicy:    policy,
			PageSize:       strings.ToUpper(v.GetString("PDF_PAGE_SIZE")),
			Compress:       v.GetBool("PDF_COMPRESS"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 20
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 5
	}
	if cfg.DB.ConnMaxLifetime == "" {
		cfg.DB.ConnMaxLifetime = "1h"
	}
	if cfg.Docs.CompanyName == "" {
		cfg.Docs.CompanyName = "Assistência Técnica"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if _, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err != nil {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
