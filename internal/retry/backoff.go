package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

type BackoffConfig struct {
	BaseDelay time.Duration // e.g. 200ms
	MaxDelay  time.Duration // e.g. 5s
}

func DefaultBackoff() BackoffConfig {
	return BackoffConfig{
		BaseDelay: 200 * time.Millisecond,
		MaxDelay:  5 * time.Second,
	}
}

// NextDelay computes an exponential backoff delay with full jitter.
// attempt is 1-based (1 => up to BaseDelay).
func NextDelay(attempt int, cfg BackoffConfig, rng *rand.Rand) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 200 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 5 * time.Second
	}

	// exponential: base * 2^(attempt-1), guarded against shift overflow
	delay := cfg.MaxDelay
	if attempt < 32 {
		delay = cfg.BaseDelay << (attempt - 1)
	}
	if delay > cfg.MaxDelay || delay <= 0 {
		delay = cfg.MaxDelay
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return time.Duration(rng.Int63n(int64(delay) + 1))
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

var ErrGaveUp = errors.New("connection attempts exhausted")

// Ping pings db until it answers, attempts run out or ctx is done.
func Ping(ctx context.Context, db Pinger, attempts int, cfg BackoffConfig, logger *slog.Logger) error {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		delay := NextDelay(attempt, cfg, nil)
		logger.Warn("database not reachable, retrying",
			"attempt", attempt,
			"delay", delay,
			"err", lastErr,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrGaveUp, attempts, lastErr)
}
