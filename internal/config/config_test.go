package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDBName, cfg.Database.DBName)
	assert.Equal(t, DefaultKafkaGroupID, cfg.Kafka.GroupID)
	assert.Equal(t, DefaultAIProvider, cfg.Intelligence.Provider)
	assert.Equal(t, DefaultExternalTimeout, cfg.External.RequestTimeout)
	assert.Equal(t, DefaultExternalCacheTTL, cfg.External.CacheTTL)
}

func TestApplyDefaultsDoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Database.Host = "db.internal"
	cfg.Intelligence.Provider = "gemini"
	cfg.External.RequestTimeout = 5 * time.Second

	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "gemini", cfg.Intelligence.Provider)
	assert.Equal(t, 5*time.Second, cfg.External.RequestTimeout)
}

func TestApplyDefaultsNilIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad server port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad server mode", func(c *Config) { c.Server.Mode = "production" }, "server.mode"},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, "database.host"},
		{"missing db user", func(c *Config) { c.Database.User = "" }, "database.user"},
		{"bad max conns", func(c *Config) { c.Database.MaxConns = 0 }, "database.max_conns"},
		{"missing redis addr", func(c *Config) { c.Redis.Addr = "" }, "redis.addr"},
		{"no kafka brokers", func(c *Config) { c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"missing group id", func(c *Config) { c.Kafka.GroupID = "" }, "kafka.group_id"},
		{"bad concurrency", func(c *Config) { c.Worker.Concurrency = 0 }, "worker.concurrency"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad provider", func(c *Config) { c.Intelligence.Provider = "llama" }, "intelligence.provider"},
		{"bad ai timeout", func(c *Config) { c.Intelligence.RequestTimeout = 0 }, "intelligence.request_timeout"},
		{"bad external timeout", func(c *Config) { c.External.RequestTimeout = 0 }, "external.request_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
