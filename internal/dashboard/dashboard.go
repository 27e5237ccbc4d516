// Package dashboard composes the per-vertical list views, overviews and
// actions served to dashboard sessions.
package dashboard

import (
	"context"
	"errors"
	"sort"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/notification"
)

var (
	ErrUnknownVertical = errors.New("unknown vertical")
	ErrUnknownAction   = errors.New("unknown action")
)

// Dashboard owns the shared overviews and the session store.
type Dashboard struct {
	backend  *backend.Backend
	workflow config.WorkflowConfig
	push     notification.Notifier
	actions  map[string]actionFactory

	Overviews *Overviews
	Sessions  *SessionStore
}

// New creates a dashboard. push receives every action notice in addition to
// the session inbox; it may be nil.
func New(b *backend.Backend, cfg *config.Config, push notification.Notifier) *Dashboard {
	d := &Dashboard{
		backend:   b,
		workflow:  cfg.Workflow,
		push:      push,
		Overviews: newOverviews(b),
	}
	d.actions = d.catalog()
	d.Sessions = newSessionStore(d, cfg.Server.SessionTTL)
	return d
}

// ActionNames lists every action, sorted.
func (d *Dashboard) ActionNames() []string {
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveCarModels lists the car models new vehicles may be assigned to.
func (d *Dashboard) ActiveCarModels(ctx context.Context) ([]CarModelRow, error) {
	models, err := d.backend.CarModels.Active(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]CarModelRow, 0, len(models))
	for _, m := range models {
		if m.Assignable() {
			rows = append(rows, presentCarModel(m))
		}
	}
	return rows, nil
}

// Booking returns one booking as a row.
func (d *Dashboard) Booking(ctx context.Context, id int64) (BookingRow, error) {
	b, err := loadEntity(ctx, id, d.backend.Bookings.Get, bookingID)
	if err != nil {
		return BookingRow{}, err
	}
	return presentBooking(b), nil
}

// Staff returns one staff record as a row.
func (d *Dashboard) Staff(ctx context.Context, id int64) (StaffRow, error) {
	r, err := loadEntity(ctx, id, d.backend.Staff.Get, staffID)
	if err != nil {
		return StaffRow{}, err
	}
	return presentStaff(r), nil
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}
