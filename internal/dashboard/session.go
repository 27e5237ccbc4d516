package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"rental-admin-backend/internal/action"
	"rental-admin-backend/internal/metrics"
	"rental-admin-backend/internal/notification"
)

// Session is the workspace of one browser tab: its list controllers, at
// most one modal per action, and the notices waiting to be shown.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	d     *Dashboard
	inbox *notification.Inbox

	mu        sync.Mutex
	lists     map[Vertical]List
	actions   map[string]action.Handle
	completed []string
}

// List returns the controller of vertical v, creating it on first use.
func (s *Session) List(v Vertical) (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lists[v]; ok {
		return l, nil
	}
	l, err := s.d.newVerticalList(v)
	if err != nil {
		return nil, err
	}
	s.lists[v] = l
	return l, nil
}

// Action returns the modal of the named action, creating it on first use.
func (s *Session) Action(name string) (action.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.actions[name]; ok {
		return h, nil
	}
	factory, ok := s.d.actions[name]
	if !ok {
		return nil, ErrUnknownAction
	}
	h := factory(notification.Fanout{s.inbox, s.d.push}, func() { s.recordCompletion(name) })
	s.actions[name] = h
	return h, nil
}

func (s *Session) recordCompletion(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, name)
	if len(s.completed) > 20 {
		s.completed = s.completed[len(s.completed)-20:]
	}
}

// Completed lists the most recently completed actions, oldest first.
func (s *Session) Completed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.completed...)
}

// Notices drains the pending notices.
func (s *Session) Notices() []notification.Notice {
	return s.inbox.Drain()
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lists {
		l.Close()
	}
	for _, h := range s.actions {
		if err := h.Close(); err != nil {
			log.Printf("Session %s: action %s still submitting at close", s.ID, h.Name())
		}
	}
	s.lists = map[Vertical]List{}
	s.actions = map[string]action.Handle{}
}

// SessionStore keeps sessions in memory. Idle sessions expire after the TTL
// and release their query subscriptions.
type SessionStore struct {
	d     *Dashboard
	items *cache.Cache
}

func newSessionStore(d *Dashboard, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	items := cache.New(ttl, ttl/2)
	items.OnEvicted(func(id string, v any) {
		if s, ok := v.(*Session); ok {
			s.close()
			metrics.ActiveSessions.Dec()
			log.Printf("Session %s closed", id)
		}
	})
	return &SessionStore{d: d, items: items}
}

// Create starts a new session.
func (st *SessionStore) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		d:         st.d,
		inbox:     notification.NewInbox(),
		lists:     map[Vertical]List{},
		actions:   map[string]action.Handle{},
	}
	st.items.SetDefault(s.ID, s)
	metrics.ActiveSessions.Inc()
	return s
}

// Get returns a live session and extends its lifetime.
func (st *SessionStore) Get(id string) (*Session, bool) {
	v, found := st.items.Get(id)
	if !found {
		return nil, false
	}
	s := v.(*Session)
	st.items.SetDefault(id, s)
	return s, true
}

// Ensure returns the session with id, or a new one when id is unknown.
func (st *SessionStore) Ensure(id string) *Session {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s
		}
	}
	return st.Create()
}

// End closes a session immediately.
func (st *SessionStore) End(id string) {
	st.items.Delete(id)
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	return st.items.ItemCount()
}

// Close ends every session.
func (st *SessionStore) Close(_ context.Context) {
	for id := range st.items.Items() {
		st.items.Delete(id)
	}
}
