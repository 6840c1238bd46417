package enrollment

import (
	"context"
	"sync"
	"time"
)

// Countdown is the resend cooldown: it decrements once per interval until
// it reaches zero. Start and Stop are explicit so the owning step can
// cancel the ticking goroutine the instant it is exited; a stopped
// countdown never decrements again even before the goroutine winds down.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	seconds   int
	interval  time.Duration
	cancel    context.CancelFunc
}

// NewCountdown builds a countdown that ticks once per second.
func NewCountdown(seconds int) *Countdown {
	return newCountdown(seconds, time.Second)
}

func newCountdown(seconds int, interval time.Duration) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{seconds: seconds, interval: interval}
}

// Start resets the counter to the full cooldown and begins ticking. Any
// run already in flight is cancelled first, so re-entering the step always
// gets a fresh countdown rather than a resumed stale one.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.remaining = c.seconds
	if c.remaining == 0 {
		return
	}
	go c.run(ctx)
}

// Stop cancels the ticking goroutine and freezes the counter.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Remaining reports whole seconds until resend becomes available.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Ready reports whether the cooldown has elapsed.
func (c *Countdown) Ready() bool {
	return c.Remaining() == 0
}

func (c *Countdown) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			// Cancellation may have raced the tick; check under the lock
			// so a stopped countdown never loses another second.
			if ctx.Err() != nil {
				c.mu.Unlock()
				return
			}
			if c.remaining > 0 {
				c.remaining--
			}
			done := c.remaining == 0
			c.mu.Unlock()
			if done {
				return
			}
		}
	}
}
