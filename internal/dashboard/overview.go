package dashboard

import (
	"context"

	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/listctl"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Panel is one overview card. A failed or malformed summary renders zeroed.
type Panel[T any] struct {
	State listctl.RenderState `json:"state"`
	Data  T                   `json:"data"`
	Error string              `json:"error,omitempty"`
}

// Overview is the landing page of the dashboard.
type Overview struct {
	Staff    Panel[model.StaffOverview]  `json:"staff"`
	Damage   Panel[model.DamageSummary]  `json:"damage"`
	Payments Panel[model.PaymentSummary] `json:"payments"`
}

// Overviews holds the overview queries. They are mounted once and shared
// by every session, so mutations refresh them through tag invalidation.
type Overviews struct {
	staff    *querycache.Subscription
	damage   *querycache.Subscription
	payments *querycache.Subscription
}

func newOverviews(b *backend.Backend) *Overviews {
	qc := b.Cache()
	return &Overviews{
		staff:    qc.Subscribe(b.Staff.OverviewRequest()),
		damage:   qc.Subscribe(b.Damage.SummaryRequest()),
		payments: qc.Subscribe(b.Payments.SummaryRequest()),
	}
}

// Render fetches any overview never loaded and returns every panel.
func (o *Overviews) Render(ctx context.Context) Overview {
	return Overview{
		Staff:    panel[model.StaffOverview](ctx, o.staff, "Failed to load staff overview"),
		Damage:   panel[model.DamageSummary](ctx, o.damage, "Failed to load damage summary"),
		Payments: panel[model.PaymentSummary](ctx, o.payments, "Failed to load payment summary"),
	}
}

// Close releases the overview subscriptions.
func (o *Overviews) Close() {
	o.staff.Close()
	o.damage.Close()
	o.payments.Close()
}

func panel[T any](ctx context.Context, sub *querycache.Subscription, failure string) Panel[T] {
	res := sub.Result()
	if res.Status == querycache.StatusIdle {
		res = sub.Refresh(ctx)
	}
	p := Panel[T]{}
	if data, ok := querycache.Value[T](res); ok {
		p.Data = data
	}
	switch res.Status {
	case querycache.StatusSuccess:
		p.State = listctl.Ready
	case querycache.StatusError:
		p.State = listctl.Failed
		p.Error = restclient.MessageOr(res.Err, failure)
	default:
		p.State = listctl.Loading
	}
	return p
}
