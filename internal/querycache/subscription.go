package querycache

import (
	"context"
	"sync"
	"time"
)

// Status is the render state of a subscribed query.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the latest outcome of a subscribed query.
type Result struct {
	Status    Status
	Data      any
	Err       error
	FetchedAt time.Time
}

// Subscription is a mounted query. Its arguments can change over time; only
// the response to the latest issued request is kept, so a slow response to
// superseded arguments never overwrites a newer one.
type Subscription struct {
	cache *Cache

	mu     sync.Mutex
	req    Request
	seq    uint64
	result Result
	closed bool
}

func (s *Subscription) key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req.Key
}

func (s *Subscription) tags() []Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req.Tags
}

// Reissue replaces the query arguments and fetches them.
func (s *Subscription) Reissue(ctx context.Context, req Request) Result {
	s.mu.Lock()
	s.req = req
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh fetches the current request, through the cache.
func (s *Subscription) Refresh(ctx context.Context) Result {
	s.mu.Lock()
	if s.closed {
		res := s.result
		s.mu.Unlock()
		return res
	}
	s.seq++
	seq := s.seq
	req := s.req
	s.result.Status = StatusLoading
	s.mu.Unlock()

	value, err := s.cache.Fetch(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// Superseded while in flight.
		return s.result
	}
	if err != nil {
		s.result = Result{Status: StatusError, Err: err, FetchedAt: time.Now()}
	} else {
		s.result = Result{Status: StatusSuccess, Data: value, FetchedAt: time.Now()}
	}
	return s.result
}

// Result returns the latest outcome without fetching.
func (s *Subscription) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Close unregisters the subscription; later invalidations ignore it.
func (s *Subscription) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cache.unsubscribe(s)
}
