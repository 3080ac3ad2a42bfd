package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Storage  StorageConfig
	Catalog  CatalogConfig
	Seller   SellerConfig
	Dispatch DispatchConfig
	HTTP     HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StorageConfig holds durable cart storage settings
type StorageConfig struct {
	Path    string // sqlite database file, or :memory:
	SlotKey string // fixed key the serialized cart is stored under
}

// CatalogConfig holds catalog source settings
type CatalogConfig struct {
	Source       string // http(s) URL or local file path to the product JSON
	FetchTimeout time.Duration
}

// SellerConfig holds the seller contact settings used by outbound channels
type SellerConfig struct {
	Phone    string // WhatsApp contact number, international format
	Currency string // display currency code, e.g. GHS
}

// DispatchConfig holds order dispatch settings
type DispatchConfig struct {
	RemoteEndpoint string // optional order submission URL; empty disables remote submission
	Timeout        time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SPEEDPARTS_ prefix (e.g. SPEEDPARTS_SELLER_PHONE)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SPEEDPARTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Path:    v.GetString("storage.path"),
			SlotKey: v.GetString("storage.slot_key"),
		},
		Catalog: CatalogConfig{
			Source:       v.GetString("catalog.source"),
			FetchTimeout: v.GetDuration("catalog.fetch_timeout"),
		},
		Seller: SellerConfig{
			Phone:    v.GetString("seller.phone"),
			Currency: v.GetString("seller.currency"),
		},
		Dispatch: DispatchConfig{
			RemoteEndpoint: v.GetString("dispatch.remote_endpoint"),
			Timeout:        v.GetDuration("dispatch.timeout"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "speedparts-storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "storefront.db"
	}
	if cfg.Storage.SlotKey == "" {
		cfg.Storage.SlotKey = "speedparts-cart"
	}
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = "assets/products.json"
	}
	if cfg.Catalog.FetchTimeout == 0 {
		cfg.Catalog.FetchTimeout = 10 * time.Second
	}
	if cfg.Seller.Phone == "" {
		cfg.Seller.Phone = "+233240000000"
	}
	if cfg.Seller.Currency == "" {
		cfg.Seller.Currency = "GHS"
	}
	if cfg.Dispatch.Timeout == 0 {
		cfg.Dispatch.Timeout = 15 * time.Second
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if c.Seller.Phone == "" {
		return fmt.Errorf("seller.phone must be configured")
	}
	if c.Dispatch.RemoteEndpoint != "" &&
		!strings.HasPrefix(c.Dispatch.RemoteEndpoint, "http://") &&
		!strings.HasPrefix(c.Dispatch.RemoteEndpoint, "https://") {
		return fmt.Errorf("dispatch.remote_endpoint must be an http(s) URL, got %q", c.Dispatch.RemoteEndpoint)
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// RemoteConfigured reports whether a remote submission endpoint is set
func (c *Config) RemoteConfigured() bool {
	return c.Dispatch.RemoteEndpoint != ""
}
