// Package adcache is a bounded, time-windowed in-memory store of selected
// ads keyed by normalized query, plus a short recency window of ad titles
// used for repeat suppression. Entries never outlive the process.
package adcache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"chatads/internal/models"
)

const (
	// DefaultMaxEntries bounds the query cache; inserting beyond it evicts
	// the earliest-inserted entry (insertion order, not LRU-by-access).
	DefaultMaxEntries = 50

	// DefaultTTL is how long a cached selection stays reusable.
	DefaultTTL = 30 * time.Minute

	// DefaultShownWindow bounds the recently-shown title set.
	DefaultShownWindow = 10
)

type entry struct {
	key      string
	ad       models.ScoredAd
	storedAt time.Time
}

// Cache maps normalized queries to previously selected ads and tracks which
// ad titles were shown recently. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element // value: *entry
	order      *list.List               // insertion order, front = oldest
	shown      map[string]*list.Element // value: string (lowercased title)
	shownOrder *list.List

	maxEntries  int
	ttl         time.Duration
	shownWindow int

	now func() time.Time // swappable for tests
}

// New creates a Cache. Non-positive parameters fall back to the defaults.
func New(maxEntries int, ttl time.Duration, shownWindow int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if shownWindow <= 0 {
		shownWindow = DefaultShownWindow
	}
	return &Cache{
		entries:     make(map[string]*list.Element),
		order:       list.New(),
		shown:       make(map[string]*list.Element),
		shownOrder:  list.New(),
		maxEntries:  maxEntries,
		ttl:         ttl,
		shownWindow: shownWindow,
		now:         time.Now,
	}
}

// Get returns the cached ad for query, or nil if none was stored or the
// entry has expired. An expired entry is deleted on access.
func (c *Cache) Get(query string) *models.ScoredAd {
	key := Normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil
	}
	e := elem.Value.(*entry)
	if c.now().Sub(e.storedAt) > c.ttl {
		c.removeLocked(elem)
		return nil
	}
	ad := e.ad
	return &ad
}

// Set stores the ad under the normalized query with the current time. A new
// key beyond capacity evicts the earliest-inserted entry first; re-setting
// an existing key refreshes it in place.
func (c *Cache) Set(query string, ad models.ScoredAd) {
	key := Normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		e := elem.Value.(*entry)
		e.ad = ad
		e.storedAt = c.now()
		return
	}

	if len(c.entries) >= c.maxEntries {
		if oldest := c.order.Front(); oldest != nil {
			c.removeLocked(oldest)
		}
	}

	elem := c.order.PushBack(&entry{key: key, ad: ad, storedAt: c.now()})
	c.entries[key] = elem
}

// WasRecentlyShown reports whether the ad title is inside the recency
// window. Matching is case-insensitive.
func (c *Cache) WasRecentlyShown(title string) bool {
	key := strings.ToLower(title)

	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.shown[key]
	return ok
}

// MarkAsShown records the ad title in the recency window, evicting the
// earliest-marked title when the window is full. Re-marking a title already
// in the window keeps its original position.
func (c *Cache) MarkAsShown(title string) {
	key := strings.ToLower(title)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.shown[key]; ok {
		return
	}
	c.shown[key] = c.shownOrder.PushBack(key)

	if len(c.shown) > c.shownWindow {
		oldest := c.shownOrder.Front()
		delete(c.shown, oldest.Value.(string))
		c.shownOrder.Remove(oldest)
	}
}

// Cleanup removes every expired entry and returns how many were removed.
// Run periodically so memory stays bounded even without read traffic.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if now.Sub(elem.Value.(*entry).storedAt) > c.ttl {
			c.removeLocked(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Len returns the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(elem *list.Element) {
	delete(c.entries, elem.Value.(*entry).key)
	c.order.Remove(elem)
}

// Normalize lowercases a query, trims it, and collapses internal whitespace
// runs to single spaces. All cache lookups and stores key on this form.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
