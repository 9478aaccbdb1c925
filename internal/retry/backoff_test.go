package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"
)

func TestNextDelay_Bounds(t *testing.T) {
	cfg := BackoffConfig{BaseDelay: 1 * time.Second, MaxDelay: 60 * time.Second}

	// attempt=1 => [0..1s]
	d1 := NextDelay(1, cfg, rand.New(rand.NewSource(1)))
	if d1 < 0 || d1 > 1*time.Second {
		t.Fatalf("attempt 1 out of range: %s", d1)
	}

	// attempt=6 => base*32 => [0..32s]
	d6 := NextDelay(6, cfg, rand.New(rand.NewSource(1)))
	if d6 < 0 || d6 > 32*time.Second {
		t.Fatalf("attempt 6 out of range: %s", d6)
	}
}

func TestNextDelay_Capped(t *testing.T) {
	cfg := BackoffConfig{BaseDelay: 10 * time.Second, MaxDelay: 60 * time.Second}

	for _, attempt := range []int{10, 40, 100} {
		d := NextDelay(attempt, cfg, rand.New(rand.NewSource(42)))
		if d < 0 || d > 60*time.Second {
			t.Fatalf("attempt %d out of range: %s", attempt, d)
		}
	}
}

func TestNextDelay_AttemptLessThanOne(t *testing.T) {
	cfg := DefaultBackoff()
	d := NextDelay(0, cfg, rand.New(rand.NewSource(7)))
	if d < 0 || d > cfg.BaseDelay {
		t.Fatalf("attempt 0 should behave like attempt 1: %s", d)
	}
}

type flakyPinger struct {
	failFor int
	calls   int
}

func (p *flakyPinger) PingContext(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failFor {
		return errors.New("connection refused")
	}
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPing_SucceedsAfterFailures(t *testing.T) {
	p := &flakyPinger{failFor: 2}
	cfg := BackoffConfig{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	if err := Ping(context.Background(), p, 5, cfg, quietLogger()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if p.calls != 3 {
		t.Fatalf("calls=%d", p.calls)
	}
}

func TestPing_GivesUp(t *testing.T) {
	p := &flakyPinger{failFor: 10}
	cfg := BackoffConfig{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	err := Ping(context.Background(), p, 3, cfg, quietLogger())
	if !errors.Is(err, ErrGaveUp) {
		t.Fatalf("expected ErrGaveUp, got %v", err)
	}
	if p.calls != 3 {
		t.Fatalf("calls=%d", p.calls)
	}
}

func TestPing_ContextCancelled(t *testing.T) {
	p := &flakyPinger{failFor: 10}
	cfg := BackoffConfig{BaseDelay: time.Hour, MaxDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Ping(ctx, p, 3, cfg, quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
