package lifecycle

import (
	"sync"
	"time"
)

// Clock tracks the timestamp of the last observed user interaction. Idleness
// is always derived from now-lastActivity; nothing sets it directly.
type Clock struct {
	mu           sync.Mutex
	lastActivity time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{lastActivity: start}
}

// ReportActivity records an interaction. Only the latest timestamp matters,
// so rapid repeated calls are harmless.
func (c *Clock) ReportActivity(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now.After(c.lastActivity) {
		c.lastActivity = now
	}
}

func (c *Clock) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

func (c *Clock) IsIdle(now time.Time, threshold time.Duration) bool {
	return now.Sub(c.LastActivity()) >= threshold
}
