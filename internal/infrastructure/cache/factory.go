package cache

import (
	"fmt"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

type guardOptions struct {
	log      *zap.Logger
	fallback bool
	dial     func(config.RedisConfig) (*RedisGuard, error)
}

// GuardOption configures OpenGuard.
type GuardOption func(*guardOptions)

// WithLogger reports which guard was chosen to log.
func WithLogger(log *zap.Logger) GuardOption {
	return func(o *guardOptions) { o.log = log }
}

// WithInMemoryFallback controls whether an unreachable redis degrades to
// the in-memory guard. Default true.
func WithInMemoryFallback(allow bool) GuardOption {
	return func(o *guardOptions) { o.fallback = allow }
}

// OpenGuard returns the setup guard for cfg. A disabled redis always yields
// the process-local guard, which only serializes setup within one instance.
func OpenGuard(cfg config.RedisConfig, opts ...GuardOption) (shared.Guard, error) {
	o := guardOptions{log: zap.NewNop(), fallback: true, dial: NewRedisGuard}
	for _, opt := range opts {
		opt(&o)
	}

	if !cfg.Enabled {
		o.log.Info("Redis disabled, using in-memory setup guard")
		return NewInMemoryGuard(0), nil
	}

	guard, err := o.dial(cfg)
	switch {
	case err == nil:
		o.log.Info("Using Redis setup guard", zap.String("addr", cfg.Addr()))
		return guard, nil
	case !o.fallback:
		return nil, fmt.Errorf("setup guard: redis at %s unavailable: %w", cfg.Addr(), err)
	}

	o.log.Warn("Redis unavailable, setup guard is local to this instance", zap.Error(err))
	return NewInMemoryGuard(0), nil
}
