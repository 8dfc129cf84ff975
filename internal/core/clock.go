package core

import "time"

// Clock is a monotonic time source measured from an arbitrary epoch.
type Clock interface {
	Now() time.Duration
}

// FramePacer caps the loop to a target rate.
type FramePacer interface {
	// Wait blocks until the next frame is due at the given rate.
	Wait(rate int)
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose epoch is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// StepClock advances by a fixed period each time Advance is called.
// Headless runs use it so simulation time depends only on the tick count.
type StepClock struct {
	Period time.Duration
	now    time.Duration
}

// NewStepClock creates a step clock for the given tick rate.
func NewStepClock(tickRate int) *StepClock {
	return &StepClock{Period: RuntimeConfig{TickRate: tickRate}.TickPeriod()}
}

// Now returns the accumulated time.
func (c *StepClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by one period.
func (c *StepClock) Advance() {
	c.now += c.Period
}

// Set jumps to an absolute time; used by tests.
func (c *StepClock) Set(d time.Duration) {
	c.now = d
}

// PausableClock wraps a clock and excludes paused spans from Now, so timers
// measured against it stop while the game is paused.
type PausableClock struct {
	base        Clock
	paused      bool
	pausedAt    time.Duration
	totalPaused time.Duration
}

// NewPausableClock wraps base.
func NewPausableClock(base Clock) *PausableClock {
	return &PausableClock{base: base}
}

// Now returns base time minus every paused span.
func (c *PausableClock) Now() time.Duration {
	if c.paused {
		return c.pausedAt - c.totalPaused
	}
	return c.base.Now() - c.totalPaused
}

// Pause freezes Now. Pausing twice is a no-op.
func (c *PausableClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.base.Now()
}

// Resume continues from where Pause froze the clock.
func (c *PausableClock) Resume() {
	if !c.paused {
		return
	}
	c.totalPaused += c.base.Now() - c.pausedAt
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *PausableClock) Paused() bool {
	return c.paused
}

// SleepPacer sleeps away whatever is left of the frame budget, like a
// classic frame-capping clock. A late frame does not try to catch up.
type SleepPacer struct {
	last  time.Time
	sleep func(time.Duration)
	now   func() time.Time
}

// NewSleepPacer creates a pacer using the real clock.
func NewSleepPacer() *SleepPacer {
	return &SleepPacer{sleep: time.Sleep, now: time.Now}
}

// Wait implements FramePacer.
func (p *SleepPacer) Wait(rate int) {
	if rate <= 0 {
		rate = 60
	}
	budget := time.Second / time.Duration(rate)
	now := p.now()
	if !p.last.IsZero() {
		if remaining := budget - now.Sub(p.last); remaining > 0 {
			p.sleep(remaining)
			now = now.Add(remaining)
		}
	}
	p.last = now
}

// NoopPacer never blocks.
type NoopPacer struct{}

// Wait implements FramePacer.
func (NoopPacer) Wait(int) {}
