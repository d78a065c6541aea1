package service

import (
	"context"
	"errors"
	"strconv"

	"moodle-bridge/internal/cache"
	"moodle-bridge/internal/config"
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/logger"

	"go.uber.org/zap"
)

// LinkGuard throttles repeated failed link attempts per mobile user.
// Counters live in the cache and expire with the configured window.
type LinkGuard interface {
	// Check returns a TOO_MANY_ATTEMPTS error once the failure budget is spent.
	Check(ctx context.Context, mobileUserID string) error
	RecordFailure(ctx context.Context, mobileUserID string)
	Clear(ctx context.Context, mobileUserID string)
}

type linkGuard struct {
	cache domain.Cache
	cfg   config.LinkGuardConfig
}

// NewLinkGuard returns a guard backed by c. A nil cache or MaxFailures <= 0
// yields a guard that allows everything.
func NewLinkGuard(c domain.Cache, cfg config.LinkGuardConfig) LinkGuard {
	if c == nil || cfg.MaxFailures <= 0 {
		return noopLinkGuard{}
	}
	return &linkGuard{cache: c, cfg: cfg}
}

// Check fails open: a cache outage never blocks linking.
func (g *linkGuard) Check(ctx context.Context, mobileUserID string) error {
	val, err := g.cache.Get(ctx, cache.LinkFailuresKey(mobileUserID))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("LinkGuard: failed to read failure counter", zap.String("mobileUserID", mobileUserID), zap.Error(err))
		}
		return nil
	}

	failures, err := strconv.Atoi(val)
	if err != nil {
		logger.Get().Warn("LinkGuard: malformed failure counter", zap.String("mobileUserID", mobileUserID), zap.String("value", val))
		return nil
	}
	if failures >= g.cfg.MaxFailures {
		logger.Get().Warn("LinkGuard: link attempts throttled",
			zap.String("mobileUserID", mobileUserID),
			zap.Int("failures", failures))
		return domain.NewTooManyAttemptsError()
	}
	return nil
}

func (g *linkGuard) RecordFailure(ctx context.Context, mobileUserID string) {
	key := cache.LinkFailuresKey(mobileUserID)
	failures, err := g.cache.Incr(ctx, key)
	if err != nil {
		logger.Get().Warn("LinkGuard: failed to record failure", zap.String("mobileUserID", mobileUserID), zap.Error(err))
		return
	}
	// The window starts at the first failure.
	if failures == 1 {
		if err := g.cache.Expire(ctx, key, g.cfg.Window); err != nil {
			logger.Get().Warn("LinkGuard: failed to set counter expiry", zap.String("mobileUserID", mobileUserID), zap.Error(err))
		}
	}
}

func (g *linkGuard) Clear(ctx context.Context, mobileUserID string) {
	if err := g.cache.Delete(ctx, cache.LinkFailuresKey(mobileUserID)); err != nil {
		logger.Get().Warn("LinkGuard: failed to clear failures", zap.String("mobileUserID", mobileUserID), zap.Error(err))
	}
}

type noopLinkGuard struct{}

func (noopLinkGuard) Check(context.Context, string) error   { return nil }
func (noopLinkGuard) RecordFailure(context.Context, string) {}
func (noopLinkGuard) Clear(context.Context, string)         {}
