package backend

import (
	"context"
	"net/http"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

const bookingPageSize = 100

// BookingClient talks to the bookings endpoints.
type BookingClient struct {
	base
}

// TotalsInput is the body of the totals update.
type TotalsInput struct {
	DiscountAmount float64 `json:"discount_amount"`
	ExtraCharges   float64 `json:"extra_charges"`
	FinalTotal     float64 `json:"final_total"`
}

func bookingTags(id int64) []querycache.Tag {
	return []querycache.Tag{querycache.T(TagBooking), querycache.ID(TagBooking, idString(id))}
}

// AllRequest describes every booking, fetched page by page. The bookings
// view filters this set in-process.
func (c *BookingClient) AllRequest() querycache.Request {
	return querycache.Request{
		Key:  "GET /bookings (all)",
		Tags: []querycache.Tag{querycache.T(TagBooking)},
		Fetch: func(ctx context.Context) (any, error) {
			return fetchAll[model.Booking](ctx, c.base, "/bookings", nil, bookingPageSize)
		},
	}
}

// All runs AllRequest through the cache.
func (c *BookingClient) All(ctx context.Context) ([]model.Booking, error) {
	return querycache.Get[[]model.Booking](ctx, c.cache, c.AllRequest())
}

// ListRequest describes one page of GET /bookings.
func (c *BookingClient) ListRequest(q restclient.Query) querycache.Request {
	return listRequest[model.Booking](c.base, "/bookings", q, querycache.T(TagBooking))
}

// GetRequest describes GET /bookings/{id}.
func (c *BookingClient) GetRequest(id int64) querycache.Request {
	return oneRequest[model.Booking](c.base, "/bookings/"+idString(id), querycache.ID(TagBooking, idString(id)))
}

// Get runs GetRequest through the cache.
func (c *BookingClient) Get(ctx context.Context, id int64) (model.Booking, error) {
	return querycache.Get[model.Booking](ctx, c.cache, c.GetRequest(id))
}

// UpdateStatus changes the booking status.
func (c *BookingClient) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (model.Booking, error) {
	return mutate[model.Booking](ctx, c.base, http.MethodPatch, "/bookings/"+idString(id)+"/status",
		map[string]model.BookingStatus{"booking_status": status}, bookingTags(id)...)
}

// UpdateTotals sends the discount, extra charges and derived final total.
func (c *BookingClient) UpdateTotals(ctx context.Context, id int64, in TotalsInput) (model.Booking, error) {
	return mutate[model.Booking](ctx, c.base, http.MethodPatch, "/bookings/"+idString(id)+"/totals", in,
		bookingTags(id)...)
}

// Cancel cancels the booking with a reason.
func (c *BookingClient) Cancel(ctx context.Context, id int64, reason string) (model.Booking, error) {
	return mutate[model.Booking](ctx, c.base, http.MethodPatch, "/bookings/"+idString(id)+"/cancel",
		map[string]string{"reason": reason}, bookingTags(id)...)
}
