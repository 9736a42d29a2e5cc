package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:          "development",
		ServerAddr:   ":8080",
		APIBaseURL:   "http://127.0.0.1:3001",
		HTTPTimeout:  30 * time.Second,
		StoreDriver:  StoreMemory,
		DefaultTheme: "dark",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing server addr", func(c *Config) { c.ServerAddr = "" }, true},
		{"relative api url", func(c *Config) { c.APIBaseURL = "/api" }, true},
		{"negative timeout", func(c *Config) { c.HTTPTimeout = -time.Second }, true},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }, true},
		{"sqlite without path", func(c *Config) { c.StoreDriver = StoreSQLite }, true},
		{"sqlite with path", func(c *Config) { c.StoreDriver = StoreSQLite; c.StorePath = "x.db" }, false},
		{"redis without url", func(c *Config) { c.StoreDriver = StoreRedis }, true},
		{"unknown driver", func(c *Config) { c.StoreDriver = "etcd" }, true},
		{"bad theme", func(c *Config) { c.DefaultTheme = "blue" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.example.com/ ")
	t.Setenv("STORE_DRIVER", " MEMORY ")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("DEFAULT_THEME", "Light")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, "light", cfg.DefaultTheme)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.NotNil(t, cfg.Defaults)
}

func TestLoadDefaults(t *testing.T) {
	d, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "John Doe", d.Site.Name)
	assert.Len(t, d.Site.Socials, 3)
	require.Len(t, d.Experience, 2)
	assert.True(t, d.Experience[0].Current())
	require.Len(t, d.Projects, 3)
	assert.Equal(t, "pro-analyzer", d.Projects[0].ID)
	assert.Equal(t, []string{"React", "TypeScript", "Tailwind CSS", "Gemini API"}, d.Projects[0].TechNames())
}

func TestOrigins(t *testing.T) {
	c := &Config{AllowedOrigins: " http://a , ,http://b"}
	assert.Equal(t, []string{"http://a", "http://b"}, c.Origins())
}
