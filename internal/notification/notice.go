package notification

import (
	"context"
	"sync"
	"time"
)

// Kind classifies a notice.
type Kind string

const (
	KindSuccess    Kind = "success"
	KindError      Kind = "error"
	KindValidation Kind = "validation"
)

// Notice is one user-facing notification. Blocking notices must be
// dismissed; the others are transient toasts.
type Notice struct {
	Kind     Kind      `json:"kind"`
	Blocking bool      `json:"blocking"`
	Vertical string    `json:"vertical"`
	Action   string    `json:"action"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Notifier receives notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Fanout delivers a notice to every non-nil notifier.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notice) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	for _, target := range f {
		if target != nil {
			target.Notify(ctx, n)
		}
	}
}

const inboxSize = 50

// Inbox buffers the notices of one dashboard session until the browser
// collects them. Only the most recent notices are kept.
type Inbox struct {
	mu      sync.Mutex
	notices []Notice
}

func NewInbox() *Inbox {
	return &Inbox{}
}

func (in *Inbox) Notify(_ context.Context, n Notice) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.notices = append(in.notices, n)
	if over := len(in.notices) - inboxSize; over > 0 {
		in.notices = in.notices[over:]
	}
}

// Drain returns and clears the pending notices.
func (in *Inbox) Drain() []Notice {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.notices
	in.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}
