package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "accommodations.db", cfg.Database.Path)
	assert.True(t, cfg.Exports.ClipboardFallback)
	assert.True(t, cfg.Docs.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperProductionDisablesDocs(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENV", EnvProduction)
	v.Set("DB_DRIVER", "POSTGRES")
	v.Set("ALLOWED_ORIGINS", "tauri://localhost, http://localhost:1420 ,")

	cfg := fromViper(v)
	assert.False(t, cfg.Docs.Enabled)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:1420"}, cfg.CORS.AllowedOrigins)
}
