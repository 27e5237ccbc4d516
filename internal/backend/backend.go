// Package backend holds one typed client per dashboard vertical. Queries are
// described as querycache requests carrying their cache tags; mutations
// invalidate the tags they affect once the backend accepts them.
package backend

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Cache tag types.
const (
	TagStaff          = "Staff"
	TagStaffOverview  = "StaffOverview"
	TagActivityLog    = "ActivityLog"
	TagBooking        = "Booking"
	TagDamage         = "DamageReport"
	TagDamageSummary  = "DamageSummary"
	TagService        = "ServiceRecord"
	TagCarModel       = "CarModel"
	TagPayment        = "Payment"
	TagPaymentSummary = "PaymentSummary"
)

// Backend bundles the per-vertical clients over one transport and one cache.
type Backend struct {
	Staff       *StaffClient
	Bookings    *BookingClient
	Damage      *DamageClient
	Maintenance *MaintenanceClient
	CarModels   *CarModelClient
	Payments    *PaymentClient

	cache *querycache.Cache
}

// New wires every vertical client.
func New(rc *restclient.Client, qc *querycache.Cache) *Backend {
	b := base{rc: rc, cache: qc}
	return &Backend{
		Staff:       &StaffClient{base: b},
		Bookings:    &BookingClient{base: b},
		Damage:      &DamageClient{base: b},
		Maintenance: &MaintenanceClient{base: b},
		CarModels:   &CarModelClient{base: b},
		Payments:    &PaymentClient{base: b},
		cache:       qc,
	}
}

// Cache returns the shared query cache.
func (b *Backend) Cache() *querycache.Cache {
	return b.cache
}

type base struct {
	rc    *restclient.Client
	cache *querycache.Cache
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func listRequest[T any](b base, path string, q restclient.Query, tags ...querycache.Tag) querycache.Request {
	return querycache.Request{
		Key:  "GET " + q.WithPath(path),
		Tags: tags,
		Fetch: func(ctx context.Context) (any, error) {
			env, err := b.rc.Get(ctx, path, q)
			if err != nil {
				return nil, err
			}
			return restclient.DecodeList[T](env), nil
		},
	}
}

func oneRequest[T any](b base, path string, tags ...querycache.Tag) querycache.Request {
	return querycache.Request{
		Key:  "GET " + path,
		Tags: tags,
		Fetch: func(ctx context.Context) (any, error) {
			env, err := b.rc.Get(ctx, path, nil)
			if err != nil {
				return nil, err
			}
			return restclient.DecodeOne[T](env), nil
		},
	}
}

// postRequest is a query carried by a POST body, used by range filters.
func postRequest[T any](b base, path string, body any, tags ...querycache.Tag) querycache.Request {
	return querycache.Request{
		Key:  fmt.Sprintf("POST %s %v", path, body),
		Tags: tags,
		Fetch: func(ctx context.Context) (any, error) {
			env, err := b.rc.Post(ctx, path, body)
			if err != nil {
				return nil, err
			}
			return restclient.DecodeList[T](env), nil
		},
	}
}

// mutate sends a mutation and, on success, invalidates tags.
func mutate[T any](ctx context.Context, b base, method, path string, body any, tags ...querycache.Tag) (T, error) {
	var zero T
	env, err := b.rc.Do(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	b.cache.Invalidate(ctx, tags...)
	return restclient.DecodeOne[T](env), nil
}

// fetchAll walks every page of a list endpoint. Responses without pagination
// metadata are treated as complete.
func fetchAll[T any](ctx context.Context, b base, path string, q restclient.Query, pageSize int) ([]T, error) {
	all := []T{}
	for page := 1; ; page++ {
		pq := restclient.Query{}.Merge(q).SetInt("page", page).SetInt("limit", pageSize)
		env, err := b.rc.Get(ctx, path, pq)
		if err != nil {
			if len(all) > 0 {
				log.Printf("Error fetching page %d of %s: %v. Returning %d items fetched so far.", page, path, err, len(all))
				return all, nil
			}
			return nil, err
		}
		res := restclient.DecodeList[T](env)
		all = append(all, res.Data...)
		if res.Pagination == nil || len(res.Data) == 0 || page >= res.TotalPages() {
			return all, nil
		}
	}
}
