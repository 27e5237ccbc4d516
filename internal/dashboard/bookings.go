package dashboard

import (
	"context"
	"strconv"
	"strings"

	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/listctl"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Booking view filter keys.
const (
	BookingFilterStatus     = "booking_status"
	BookingFilterPickupFrom = "pickup_from"
	BookingFilterPickupTo   = "pickup_to"
)

// BookingFilter narrows the booking set in-process.
type BookingFilter struct {
	Search     string
	Status     string
	PickupFrom string
	PickupTo   string
}

// Matches reports whether b passes every set criterion. Search matches the
// booking, customer and vehicle ids and the customer name.
func (f BookingFilter) Matches(b model.Booking) bool {
	if f.Status != "" && string(b.BookingStatus) != f.Status {
		return false
	}
	if (f.PickupFrom != "" || f.PickupTo != "") && !parse.InRange(b.PickupDate, f.PickupFrom, f.PickupTo) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		fields := []string{
			strconv.FormatInt(b.BookingID, 10),
			strconv.FormatInt(b.CustomerID, 10),
			strconv.FormatInt(b.VehicleID, 10),
			strings.ToLower(b.CustomerName),
		}
		for _, field := range fields {
			if strings.Contains(field, term) {
				return true
			}
		}
		return false
	}
	return true
}

// FilterBookings returns the bookings matching f, in their original order.
func FilterBookings(bookings []model.Booking, f BookingFilter) []model.Booking {
	out := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// bindBookings derives the bookings table from the full booking set: the set
// is fetched once through the cache, then filtered and paginated locally.
func bindBookings(b *backend.Backend) listctl.Bind {
	return func(p listctl.Params) querycache.Request {
		all := b.Bookings.AllRequest()
		f := BookingFilter{
			Search:     p.Search,
			Status:     p.Filters[BookingFilterStatus],
			PickupFrom: p.Filters[BookingFilterPickupFrom],
			PickupTo:   p.Filters[BookingFilterPickupTo],
		}
		return querycache.Request{
			Key:  "bookings view " + restclient.Query(p.Values()).Encode(),
			Tags: all.Tags,
			Fetch: func(ctx context.Context) (any, error) {
				bookings, err := querycache.Get[[]model.Booking](ctx, b.Cache(), all)
				if err != nil {
					return nil, err
				}
				return listctl.Paginate(FilterBookings(bookings, f), p.Page, p.Limit), nil
			},
		}
	}
}
