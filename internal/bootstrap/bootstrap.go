// Package bootstrap wires the service graph shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/awmpietro/algoviz/internal/app"
	"github.com/awmpietro/algoviz/internal/cache"
	"github.com/awmpietro/algoviz/internal/config"
	"github.com/awmpietro/algoviz/internal/logging"
	"github.com/awmpietro/algoviz/internal/validate"
)

// Logger builds the process logger from the runtime config.
func Logger(rt config.Runtime) (*slog.Logger, error) {
	level, err := logging.ParseLevel(rt.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level, rt.LogFormat, os.Stderr), nil
}

// Service builds the generation service. A Redis cache is used when
// RedisAddr is set and reachable; otherwise the bounded in-memory cache.
// reg may be nil to skip metrics. The returned func releases resources.
func Service(ctx context.Context, rt config.Runtime, logger *slog.Logger, reg prometheus.Registerer) (*app.Service, func(), error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	v, err := validate.New(rt.Rules)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	var (
		c       app.Cache = cache.NewInMemory(rt.CacheMaxItems)
		cleanup           = func() {}
	)
	if rt.RedisAddr != "" {
		r := cache.NewRedis(rt.RedisAddr, cache.WithTTL(rt.RedisTTL), cache.WithLogger(logger))
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			logger.Warn("redis_unavailable", "addr", rt.RedisAddr, "error", err)
			_ = r.Close()
		} else {
			c = r
			cleanup = func() { _ = r.Close() }
		}
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithBatchLimit(rt.BatchLimit),
	}
	if reg != nil {
		opts = append(opts, app.WithMetrics(app.NewMetrics(reg)))
	}
	return app.NewService(v, c, opts...), cleanup, nil
}
