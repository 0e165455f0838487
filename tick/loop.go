// Package tick implements the fixed-rate main loop: a monotonic-clock
// paced tick that favors steady spacing over total-count accuracy when
// the caller falls behind schedule.
package tick

import (
	"context"
	"errors"
	"time"

	"github.com/ohkthx/rycetui/signals"
)

// ErrInvalidTPS is returned by New for a negative target rate. A rate
// of exactly zero is clamped to 1 rather than rejected; a negative
// rate has no sensible clamp.
var ErrInvalidTPS = errors.New("tick: target tps must not be negative")

// Result reports what happened at the end of one Tick call.
type Result struct {
	// Tick is the 1-based count of ticks completed so far, including
	// this one.
	Tick uint64
	// Actual is the monotonic timestamp recorded right after this
	// tick's wait (or immediate-proceed) completed.
	Actual time.Time
}

// Loop paces a fixed-rate main loop against the monotonic clock. A
// stalled tick resets its reference point to the actual wake time
// rather than the originally scheduled one (see Tick), so lag is
// forgotten instead of triggering a catch-up burst. Cancellation is
// via context.Context, passed to Tick like any other blocking call,
// rather than a package-level stop flag.
type Loop struct {
	period time.Duration
	last   time.Time

	tick uint64

	windowStart time.Time
	windowTicks uint64

	tps *signals.Signal[float64]
}

// New constructs a Loop targeting tps ticks per second, clamped to a
// minimum of 1 to avoid a zero-length period. The monotonic clock is
// sampled immediately as the loop's starting reference point.
func New(tps int) (*Loop, error) {
	if tps < 0 {
		return nil, ErrInvalidTPS
	}
	if tps == 0 {
		tps = 1
	}

	now := time.Now()
	return &Loop{
		period:      time.Second / time.Duration(tps),
		last:        now,
		windowStart: now,
		tps:         signals.New(float64(tps)),
	}, nil
}

// TPS returns the reactive signal exposing the loop's measured ticks
// per second, recomputed once per rolling one-second window. Consuming
// code can read it with Get/Peek or wire a signals.Effect to it for a
// live status display.
func (l *Loop) TPS() *signals.Signal[float64] { return l.tps }

// TickCount returns the total number of completed ticks.
func (l *Loop) TickCount() uint64 { return l.tick }

// Tick blocks until the next scheduled tick boundary (or returns
// immediately if the caller is already behind schedule), then records
// the actual wake time as the new reference point. It returns ctx.Err()
// if ctx is canceled, including mid-sleep.
func (l *Loop) Tick(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := time.Now()
	next := l.last.Add(l.period)

	if next.After(now) {
		timer := time.NewTimer(next.Sub(now))
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	// Otherwise next <= now: already behind schedule, proceed at once
	// rather than queuing a catch-up burst.

	actual := time.Now()

	l.tick++
	l.windowTicks++
	if elapsed := actual.Sub(l.windowStart); elapsed >= time.Second {
		l.tps.Set(float64(l.windowTicks) / elapsed.Seconds())
		l.windowTicks = 0
		l.windowStart = actual
	}

	// last := actual, not last := next: a stalled tick forgets its lag
	// instead of scheduling immediate follow-up ticks to catch up.
	l.last = actual

	return Result{Tick: l.tick, Actual: actual}, nil
}
