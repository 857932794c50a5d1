package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInit_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Init()
	cfg := Get()

	assert.Equal(t, "filmorate", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr())
	assert.Equal(t, time.Minute, cfg.Cache.PopularTTLDuration())
	assert.Equal(t, 10, cfg.Films.PopularDefaultCount)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestInit_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("cache.enabled", true)
	viper.Set("cache.host", "redis")
	viper.Set("cache.popular_ttl", 5)
	viper.Set("films.popular_default_count", 3)

	Init()
	cfg := Get()

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr())
	assert.Equal(t, 5*time.Second, cfg.Cache.PopularTTLDuration())
	assert.Equal(t, 3, cfg.Films.PopularDefaultCount)
}
