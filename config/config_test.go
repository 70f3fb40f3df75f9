package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := LoadConfig()

	assert.Equal(t, "6543", cfg.Database.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.True(t, cfg.Auth.AllowQueryToken)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Same(t, AppConfig, cfg)
}

func TestGetAuthConfig_ProductionDisablesQueryToken(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENVIRONMENT", "production")

	auth := GetAuthConfig(v)

	assert.False(t, auth.AllowQueryToken)
}

func TestServerConfig_IsProduction(t *testing.T) {
	assert.True(t, ServerConfig{Environment: "production"}.IsProduction())
	assert.False(t, ServerConfig{Environment: "development"}.IsProduction())
}
