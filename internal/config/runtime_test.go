package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/algoviz/internal/validate"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ALGOVIZ_CONFIG", "HTTP_ADDR", "ALGOVIZ_CACHE_MAX_ITEMS", "ALGOVIZ_REDIS_ADDR",
		"ALGOVIZ_REDIS_TTL", "ALGOVIZ_DEFAULT_DELAY", "ALGOVIZ_OBS_BUFFER",
		"ALGOVIZ_BATCH_LIMIT", "ALGOVIZ_LOG_LEVEL", "ALGOVIZ_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	rt, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), rt)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ALGOVIZ_CACHE_MAX_ITEMS", "32")
	t.Setenv("ALGOVIZ_REDIS_ADDR", "localhost:6379")
	t.Setenv("ALGOVIZ_DEFAULT_DELAY", "50ms")
	t.Setenv("ALGOVIZ_LOG_FORMAT", "json")

	rt, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", rt.HTTPAddr)
	assert.Equal(t, 32, rt.CacheMaxItems)
	assert.Equal(t, "localhost:6379", rt.RedisAddr)
	assert.Equal(t, 50*time.Millisecond, rt.DefaultDelay)
	assert.Equal(t, "json", rt.LogFormat)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALGOVIZ_CACHE_MAX_ITEMS", "0")
	t.Setenv("ALGOVIZ_OBS_BUFFER", "lots")
	t.Setenv("ALGOVIZ_DEFAULT_DELAY", "-1s")

	rt, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1024, rt.CacheMaxItems)
	assert.Equal(t, 4096, rt.ObsBuffer)
	assert.Equal(t, 200*time.Millisecond, rt.DefaultDelay)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
http_addr: ":7000"
cache:
  max_items: 10
  redis_addr: "redis:6379"
  ttl: 10m
playback:
  default_delay: 1s
log:
  level: debug
rules:
  knapsack:
    - name: capacity-range
      expr: "capacity <= 30"
      message: "capacity must be at most 30"
`)
	t.Setenv("ALGOVIZ_CONFIG", path)
	t.Setenv("HTTP_ADDR", ":8081")

	rt, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", rt.HTTPAddr)
	assert.Equal(t, 10, rt.CacheMaxItems)
	assert.Equal(t, "redis:6379", rt.RedisAddr)
	assert.Equal(t, 10*time.Minute, rt.RedisTTL)
	assert.Equal(t, time.Second, rt.DefaultDelay)
	assert.Equal(t, "debug", rt.LogLevel)
	assert.Equal(t, "text", rt.LogFormat)
	assert.Equal(t, []validate.Rule{{
		Name:    "capacity-range",
		Expr:    "capacity <= 30",
		Message: "capacity must be at most 30",
	}}, rt.Rules["knapsack"])
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	t.Setenv("ALGOVIZ_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ALGOVIZ_CONFIG", writeConfig(t, "cache: [not, a, map]"))
	_, err = Load()
	assert.Error(t, err)
}
