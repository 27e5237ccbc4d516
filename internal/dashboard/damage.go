package dashboard

import (
	"context"
	"strconv"
	"strings"

	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/listctl"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// DamageFilter narrows a damage report set in-process. The date-range
// endpoint takes no other criteria, so these are applied to its answer.
type DamageFilter struct {
	Search    string
	Status    string
	VehicleID string
}

// Matches reports whether d passes every set criterion. Search matches the
// description and the incident and booking ids.
func (f DamageFilter) Matches(d model.DamageReport) bool {
	if f.Status != "" && string(d.Status) != f.Status {
		return false
	}
	if f.VehicleID != "" && strconv.FormatInt(d.VehicleID, 10) != strings.TrimSpace(f.VehicleID) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(d.IncidentDescription), term) ||
			strings.Contains(strconv.FormatInt(d.IncidentID, 10), term) ||
			strings.Contains(strconv.FormatInt(d.BookingID, 10), term)
	}
	return true
}

// unpaged is the list query without page and limit, for endpoints that
// answer every match at once.
func unpaged(p listctl.Params) restclient.Query {
	q := query(p)
	delete(q, "page")
	delete(q, "limit")
	return q
}

// pageLocally wraps source, an unpaginated list request, so the view pages
// through its rows in-process. keep may be nil.
func pageLocally[T any](qc *querycache.Cache, view string, p listctl.Params, source querycache.Request, keep func(T) bool) querycache.Request {
	return querycache.Request{
		Key:  view + " view " + query(p).Encode(),
		Tags: source.Tags,
		Fetch: func(ctx context.Context) (any, error) {
			all, err := querycache.Get[restclient.Page[T]](ctx, qc, source)
			if err != nil {
				return nil, err
			}
			items := all.Data
			if keep != nil {
				items = make([]T, 0, len(all.Data))
				for _, item := range all.Data {
					if keep(item) {
						items = append(items, item)
					}
				}
			}
			return listctl.Paginate(items, p.Page, p.Limit), nil
		},
	}
}

// bindDamage sends a complete date range to the date-range endpoint and
// applies the remaining criteria locally. Anything else goes to the list
// endpoint with every filter.
func bindDamage(b *backend.Backend) listctl.Bind {
	return func(p listctl.Params) querycache.Request {
		start, end := p.Filters[backend.DamageFilterStartDate], p.Filters[backend.DamageFilterEndDate]
		if start == "" || end == "" {
			return pageLocally[model.DamageReport](b.Cache(), "damage", p, b.Damage.ListRequest(unpaged(p)), nil)
		}
		f := DamageFilter{
			Search:    p.Search,
			Status:    p.Filters[backend.DamageFilterStatus],
			VehicleID: p.Filters[backend.DamageFilterVehicleID],
		}
		source := b.Damage.DateRangeRequest(backend.DateRange{StartDate: start, EndDate: end})
		return pageLocally(b.Cache(), "damage", p, source, f.Matches)
	}
}

func bindCarModels(b *backend.Backend) listctl.Bind {
	return func(p listctl.Params) querycache.Request {
		return pageLocally[model.CarModel](b.Cache(), "car models", p, b.CarModels.ListRequest(unpaged(p)), nil)
	}
}
