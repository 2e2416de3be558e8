// Package config assembles the runtime configuration from an optional YAML
// file and environment variables. Environment values win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/awmpietro/algoviz/internal/validate"
)

type Runtime struct {
	HTTPAddr      string
	CacheMaxItems int
	RedisAddr     string
	RedisTTL      time.Duration
	DefaultDelay  time.Duration
	ObsBuffer     int
	BatchLimit    int
	LogLevel      string
	LogFormat     string

	// Rules overrides precondition rules, keyed by algorithm id or family.
	Rules map[string][]validate.Rule
}

// File mirrors the YAML configuration document.
type File struct {
	HTTPAddr string `yaml:"http_addr"`
	Cache    struct {
		MaxItems  int           `yaml:"max_items"`
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Playback struct {
		DefaultDelay time.Duration `yaml:"default_delay"`
		ObsBuffer    int           `yaml:"obs_buffer"`
	} `yaml:"playback"`
	BatchLimit int `yaml:"batch_limit"`
	Log        struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Rules map[string][]validate.Rule `yaml:"rules"`
}

func Defaults() Runtime {
	return Runtime{
		HTTPAddr:      ":8080",
		CacheMaxItems: 1024,
		DefaultDelay:  200 * time.Millisecond,
		ObsBuffer:     4096,
		BatchLimit:    4,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads ALGOVIZ_CONFIG when set, then applies environment overrides.
func Load() (Runtime, error) {
	rt := Defaults()

	if path := os.Getenv("ALGOVIZ_CONFIG"); path != "" {
		f, err := ReadFile(path)
		if err != nil {
			return Runtime{}, err
		}
		rt = f.apply(rt)
	}

	rt.HTTPAddr = getenv("HTTP_ADDR", rt.HTTPAddr)
	rt.CacheMaxItems = getenvInt("ALGOVIZ_CACHE_MAX_ITEMS", rt.CacheMaxItems, 1)
	rt.RedisAddr = getenv("ALGOVIZ_REDIS_ADDR", rt.RedisAddr)
	rt.RedisTTL = getenvDuration("ALGOVIZ_REDIS_TTL", rt.RedisTTL)
	rt.DefaultDelay = getenvDuration("ALGOVIZ_DEFAULT_DELAY", rt.DefaultDelay)
	rt.ObsBuffer = getenvInt("ALGOVIZ_OBS_BUFFER", rt.ObsBuffer, 1)
	rt.BatchLimit = getenvInt("ALGOVIZ_BATCH_LIMIT", rt.BatchLimit, 1)
	rt.LogLevel = getenv("ALGOVIZ_LOG_LEVEL", rt.LogLevel)
	rt.LogFormat = getenv("ALGOVIZ_LOG_FORMAT", rt.LogFormat)

	return rt, nil
}

func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &f, nil
}

// apply copies every set field of f onto rt. Invalid numbers keep the
// previous value, like their environment counterparts.
func (f *File) apply(rt Runtime) Runtime {
	if f.HTTPAddr != "" {
		rt.HTTPAddr = f.HTTPAddr
	}
	if f.Cache.MaxItems >= 1 {
		rt.CacheMaxItems = f.Cache.MaxItems
	}
	if f.Cache.RedisAddr != "" {
		rt.RedisAddr = f.Cache.RedisAddr
	}
	if f.Cache.TTL > 0 {
		rt.RedisTTL = f.Cache.TTL
	}
	if f.Playback.DefaultDelay > 0 {
		rt.DefaultDelay = f.Playback.DefaultDelay
	}
	if f.Playback.ObsBuffer >= 1 {
		rt.ObsBuffer = f.Playback.ObsBuffer
	}
	if f.BatchLimit >= 1 {
		rt.BatchLimit = f.BatchLimit
	}
	if f.Log.Level != "" {
		rt.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		rt.LogFormat = f.Log.Format
	}
	if len(f.Rules) > 0 {
		rt.Rules = f.Rules
	}
	return rt
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback, min int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
