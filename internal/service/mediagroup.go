package service

import (
	"sync"
	"time"
)

// mediaGroupWindow is how long after the first message of an album the
// remaining messages of the same group are dropped.
const mediaGroupWindow = 60 * time.Second

// MediaGroupCache suppresses duplicate replies to albums, which arrive
// from Telegram as several messages sharing one media_group_id. Safe
// for concurrent use.
type MediaGroupCache struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func NewMediaGroupCache() *MediaGroupCache {
	return &MediaGroupCache{seen: map[string]time.Time{}}
}

// ShouldSuppress reports whether an event for the group should be
// dropped: true while less than the window has passed since the stored
// timestamp. A non-suppressed call records now as the group's last-seen
// time.
func (c *MediaGroupCache) ShouldSuppress(groupID string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if last, ok := c.seen[groupID]; ok && now.Sub(last) < mediaGroupWindow {
		return true
	}
	c.seen[groupID] = now
	return false
}

// Cleanup drops entries old enough that they can no longer suppress
// anything, keeping the map from growing with every album ever seen.
func (c *MediaGroupCache) Cleanup(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, last := range c.seen {
		if now.Sub(last) >= mediaGroupWindow {
			delete(c.seen, id)
		}
	}
}

// Len returns the number of tracked media groups.
func (c *MediaGroupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}
