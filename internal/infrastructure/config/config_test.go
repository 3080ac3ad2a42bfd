package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SPEEDPARTS_APP_NAME":                  os.Getenv("SPEEDPARTS_APP_NAME"),
		"SPEEDPARTS_APP_PORT":                  os.Getenv("SPEEDPARTS_APP_PORT"),
		"SPEEDPARTS_SELLER_PHONE":              os.Getenv("SPEEDPARTS_SELLER_PHONE"),
		"SPEEDPARTS_SELLER_CURRENCY":           os.Getenv("SPEEDPARTS_SELLER_CURRENCY"),
		"SPEEDPARTS_DISPATCH_REMOTE_ENDPOINT":  os.Getenv("SPEEDPARTS_DISPATCH_REMOTE_ENDPOINT"),
		"SPEEDPARTS_STORAGE_PATH":              os.Getenv("SPEEDPARTS_STORAGE_PATH"),
		"SPEEDPARTS_CATALOG_SOURCE":            os.Getenv("SPEEDPARTS_CATALOG_SOURCE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "speedparts-storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "storefront.db", cfg.Storage.Path)
		assert.Equal(t, "speedparts-cart", cfg.Storage.SlotKey)
		assert.Equal(t, "+233240000000", cfg.Seller.Phone)
		assert.Equal(t, "GHS", cfg.Seller.Currency)
		assert.Equal(t, 10*time.Second, cfg.Catalog.FetchTimeout)
		assert.False(t, cfg.RemoteConfigured())
		assert.False(t, cfg.IsProduction())
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SPEEDPARTS_APP_PORT", "9090")
		os.Setenv("SPEEDPARTS_SELLER_PHONE", "+233555000111")
		os.Setenv("SPEEDPARTS_DISPATCH_REMOTE_ENDPOINT", "https://orders.example.com/submit")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "+233555000111", cfg.Seller.Phone)
		assert.True(t, cfg.RemoteConfigured())
		assert.Equal(t, "https://orders.example.com/submit", cfg.Dispatch.RemoteEndpoint)
	})

	t.Run("rejects a non-http remote endpoint", func(t *testing.T) {
		clearEnv()
		os.Setenv("SPEEDPARTS_DISPATCH_REMOTE_ENDPOINT", "ftp://orders.example.com")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote_endpoint")
	})
}
