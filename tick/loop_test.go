package tick

import (
	"context"
	"testing"
	"time"
)

// 200 ticks at 100 tps should take roughly 2 seconds, and the measured
// TPS should converge near 100.
func TestTickPacingConvergesToTargetTPS(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time pacing scenario; skipped under -short")
	}

	l, err := New(100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	start := time.Now()
	var last Result
	for i := 0; i < 200; i++ {
		r, err := l.Tick(ctx)
		if err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
		last = r
	}
	elapsed := time.Since(start)

	if elapsed < 1800*time.Millisecond || elapsed > 2500*time.Millisecond {
		t.Fatalf("elapsed = %v, want within [1.8s, 2.5s]", elapsed)
	}
	if last.Tick != 200 {
		t.Fatalf("Tick count = %d, want 200", last.Tick)
	}

	got := l.TPS().Peek()
	if got < 95 || got > 105 {
		t.Fatalf("measured tps = %v, want within ±5%% of 100", got)
	}
}

func TestNewClampsZeroToOneTPS(t *testing.T) {
	l, err := New(0)
	if err != nil {
		t.Fatalf("New(0): %v", err)
	}
	if l.period != time.Second {
		t.Fatalf("period = %v, want 1s", l.period)
	}
}

func TestNewRejectsNegativeTPS(t *testing.T) {
	if _, err := New(-1); err != ErrInvalidTPS {
		t.Fatalf("New(-1) = %v, want ErrInvalidTPS", err)
	}
}

func TestTickHonorsContextCancellation(t *testing.T) {
	l, err := New(1) // 1 tps => 1s period, long enough to cancel mid-sleep
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = l.Tick(ctx)
	if err != context.Canceled {
		t.Fatalf("Tick err = %v, want context.Canceled", err)
	}
}

// Behind-schedule ticks proceed immediately rather than bursting to
// catch up.
func TestTickBehindScheduleDoesNotBurst(t *testing.T) {
	l, err := New(1000) // 1ms period
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	// Force the loop behind schedule by sleeping well past one period
	// before ticking at all.
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	if _, err := l.Tick(ctx); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Millisecond {
		t.Fatalf("behind-schedule tick took %v, want near-immediate return", elapsed)
	}
}
