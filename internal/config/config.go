package config

import (
	"fmt"

	pkgconfig "github.com/23sarmiento78/BOLUSHOP/pkg/config"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// SiteURL is the public origin used for gateway redirect URLs.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:8080"`

	// Data directory for the JSON file stores.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Directory where admin image uploads are stored and served from.
	UploadsDir string `env:"UPLOADS_DIR" envDefault:"./data/uploads"`

	// Payment gateway
	MPAccessToken   string `env:"MP_ACCESS_TOKEN"`
	MPWebhookSecret string `env:"MP_WEBHOOK_SECRET"`
	MPBaseURL       string `env:"MP_BASE_URL"`

	// Admin back-office credentials
	AdminUser     string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Kafka. Empty brokers disable event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Import upload limit in megabytes.
	MaxUploadMB int64 `env:"MAX_UPLOAD_MB" envDefault:"10"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR is required")
	}
	if cfg.UploadsDir == "" {
		return nil, fmt.Errorf("UPLOADS_DIR is required")
	}
	if cfg.AdminPassword == "" && cfg.Environment != "development" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required outside development")
	}
	if cfg.MaxUploadMB < 1 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be at least 1")
	}
	return cfg, nil
}
