package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:          "8375",
		Env:           "development",
		JWTSecret:     "secure-secret-at-least-32-chars-long",
		DBDriver:      "sqlite",
		AssistantMode: "local",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid development", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Port = "" }, "PORT"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "DB_DRIVER"},
		{"unknown assistant mode", func(c *Config) { c.AssistantMode = "magic" }, "ASSISTANT_MODE"},
		{"remote without url", func(c *Config) { c.AssistantMode = "remote" }, "ASSISTANT_REMOTE_URL"},
		{"fallback with url", func(c *Config) {
			c.AssistantMode = "fallback"
			c.AssistantRemoteURL = "http://assistant.local/functions/v1/nexai"
		}, ""},
		{"negative demo resources", func(c *Config) { c.DemoResources = -1 }, "DEMO_RESOURCES"},
		{"production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, "default value"},
		{"production sqlite", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "strong"
		}, "postgres"},
		{"production weak db password", func(c *Config) {
			c.Env = "prod"
			c.DBDriver = "postgres"
			c.DBPassword = "password"
		}, "DB_PASSWORD"},
		{"production valid", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBPassword = "strong-password"
			c.DBSSLMode = "require"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("ASSISTANT_MODE", "LOCAL")
	t.Setenv("DEMO_RESOURCES", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8375", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "local", cfg.AssistantMode)
	assert.Equal(t, 10, cfg.AssistantTimeoutSeconds)
	assert.Equal(t, 3, cfg.DemoResources)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_MissingProfileFails(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "staging-without-file")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.staging-without-file.yml")
}
