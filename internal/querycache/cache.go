package querycache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"rental-admin-backend/internal/metrics"
)

// Request describes one query: a cache key derived from the endpoint and
// its arguments, the tags it provides, and the function that fetches it.
type Request struct {
	Key   string
	Tags  []Tag
	Fetch func(ctx context.Context) (any, error)
}

type entry struct {
	value any
	tags  []Tag
}

// flight is a fetch not yet stored. Invalidate bumps its key's generation so
// the result is discarded.
type flight struct {
	tags []Tag
}

// Cache stores query results keyed by Request.Key. Concurrent fetches of the
// same key share one in-flight call. Invalidating a tag drops every matching
// entry and re-executes every subscription providing that tag.
type Cache struct {
	store *cache.Cache
	group singleflight.Group

	mu       sync.Mutex
	gen      map[string]uint64
	inflight map[string]*flight
	subs     map[*Subscription]struct{}
}

// New creates a cache whose entries expire after ttl.
func New(ttl, cleanup time.Duration) *Cache {
	return &Cache{
		store:    cache.New(ttl, cleanup),
		gen:      make(map[string]uint64),
		inflight: make(map[string]*flight),
		subs:     make(map[*Subscription]struct{}),
	}
}

// Fetch returns the cached value for req.Key or executes req.Fetch.
// Failed fetches are not cached.
func (c *Cache) Fetch(ctx context.Context, req Request) (any, error) {
	if v, found := c.store.Get(req.Key); found {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return v.(entry).value, nil
	}

	v, err, shared := c.group.Do(req.Key, func() (any, error) {
		c.mu.Lock()
		gen := c.gen[req.Key]
		f := &flight{tags: req.Tags}
		c.inflight[req.Key] = f
		c.mu.Unlock()

		value, err := req.Fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.inflight[req.Key] == f {
			delete(c.inflight, req.Key)
		}
		if err != nil {
			return nil, err
		}
		// An invalidation that raced with this fetch makes the value stale.
		if c.gen[req.Key] == gen {
			c.store.SetDefault(req.Key, entry{value: value, tags: req.Tags})
		}
		return value, nil
	})
	if shared {
		metrics.CacheLookups.WithLabelValues("shared").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return v, err
}

// Subscribe registers a query that is re-executed whenever one of its tags
// is invalidated. The subscription does not fetch until Refresh or Reissue.
func (c *Cache) Subscribe(req Request) *Subscription {
	s := &Subscription{cache: c, req: req}
	c.mu.Lock()
	c.subs[s] = struct{}{}
	c.mu.Unlock()
	return s
}

func (c *Cache) unsubscribe(s *Subscription) {
	c.mu.Lock()
	delete(c.subs, s)
	c.mu.Unlock()
}

// Invalidate marks every entry providing one of tags as stale, then
// re-executes the affected subscriptions and waits for them to settle.
// It returns the number of subscriptions re-executed.
func (c *Cache) Invalidate(ctx context.Context, tags ...Tag) int {
	if len(tags) == 0 {
		return 0
	}
	for _, t := range tags {
		metrics.Invalidations.WithLabelValues(t.Type).Inc()
	}

	c.mu.Lock()
	for key, item := range c.store.Items() {
		if e, ok := item.Object.(entry); ok && anyInvalidated(tags, e.tags) {
			c.store.Delete(key)
			c.gen[key]++
			c.group.Forget(key)
		}
	}
	for key, f := range c.inflight {
		if anyInvalidated(tags, f.tags) {
			c.gen[key]++
			c.group.Forget(key)
		}
	}
	var affected []*Subscription
	for s := range c.subs {
		if anyInvalidated(tags, s.tags()) {
			affected = append(affected, s)
			c.gen[s.key()]++
			c.group.Forget(s.key())
		}
	}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range affected {
		wg.Add(1)
		go func(s *Subscription) {
			defer wg.Done()
			metrics.Refetches.Inc()
			if res := s.Refresh(ctx); res.Err != nil {
				log.Printf("refetch of %s failed: %v", s.key(), res.Err)
			}
		}(s)
	}
	wg.Wait()
	return len(affected)
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.store.Items() {
		c.gen[key]++
	}
	c.store.Flush()
}
