package dashboard

import (
	"context"

	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/listctl"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Vertical names one dashboard area.
type Vertical string

const (
	Staff       Vertical = "staff"
	Bookings    Vertical = "bookings"
	Damage      Vertical = "damage"
	Maintenance Vertical = "maintenance"
	CarModels   Vertical = "car_models"
	Payments    Vertical = "payments"
	Activity    Vertical = "activity_logs"
)

// Verticals lists every vertical with a list view.
var Verticals = []Vertical{Staff, Bookings, Damage, Maintenance, CarModels, Payments, Activity}

// List is the type-erased surface of a list controller whose rows are
// presented for display.
type List interface {
	SetSearch(ctx context.Context, term string)
	SetFilter(ctx context.Context, key, value string) error
	SetFilters(ctx context.Context, values map[string]string) error
	ClearFilters(ctx context.Context)
	SetPage(ctx context.Context, n int)
	NextPage(ctx context.Context) bool
	PrevPage(ctx context.Context) bool
	SetItemsPerPage(ctx context.Context, n int) error
	Apply(ctx context.Context, ch listctl.Change) error
	ToggleFilters() bool
	Render(ctx context.Context) any
	Close()
}

type presentedList[T, R any] struct {
	*listctl.Controller[T]
	present func(T) R
}

func (l presentedList[T, R]) Render(ctx context.Context) any {
	v := l.View(ctx)
	rows := make([]R, len(v.Items))
	for i, item := range v.Items {
		rows[i] = l.present(item)
	}
	return listctl.View[R]{
		State:      v.State,
		Items:      rows,
		TotalPages: v.TotalPages,
		TotalItems: v.TotalItems,
		CanPrev:    v.CanPrev,
		CanNext:    v.CanNext,
		Empty:      v.Empty,
		Message:    v.Message,
		Error:      v.Error,
		Controls:   v.Controls,
		FilterKeys: v.FilterKeys,
		PageSizes:  v.PageSizes,
	}
}

func newList[T, R any](qc *querycache.Cache, bind listctl.Bind, filters []string, present func(T) R) List {
	defaults := make(map[string]string, len(filters))
	for _, k := range filters {
		defaults[k] = ""
	}
	return presentedList[T, R]{
		Controller: listctl.New[T](qc, bind, listctl.Options{Filters: defaults}),
		present:    present,
	}
}

func query(p listctl.Params) restclient.Query {
	return restclient.Query(p.Values())
}

// newVerticalList builds the list controller of one vertical.
func (d *Dashboard) newVerticalList(v Vertical) (List, error) {
	b, qc := d.backend, d.backend.Cache()
	switch v {
	case Staff:
		return newList(qc, func(p listctl.Params) querycache.Request { return b.Staff.ListRequest(query(p)) },
			[]string{backend.StaffFilterBranch, backend.StaffFilterJobTitle, backend.StaffFilterEmploymentType, backend.StaffFilterStatus},
			presentStaff), nil
	case Bookings:
		return newList(qc, bindBookings(b),
			[]string{BookingFilterStatus, BookingFilterPickupFrom, BookingFilterPickupTo},
			presentBooking), nil
	case Damage:
		return newList(qc, bindDamage(b),
			[]string{backend.DamageFilterStatus, backend.DamageFilterVehicleID, backend.DamageFilterStartDate, backend.DamageFilterEndDate},
			damagePresenter(d.workflow.AllowBackwardDamageTransitions)), nil
	case Maintenance:
		return newList(qc, func(p listctl.Params) querycache.Request { return b.Maintenance.ListRequest(query(p)) },
			[]string{backend.ServiceFilterStatus, backend.ServiceFilterServiceType, backend.ServiceFilterVehicleID},
			presentService), nil
	case CarModels:
		return newList(qc, bindCarModels(b),
			[]string{backend.CarModelFilterVehicleType, backend.CarModelFilterFuelType, backend.CarModelFilterActive},
			presentCarModel), nil
	case Payments:
		return newList(qc, func(p listctl.Params) querycache.Request { return b.Payments.ListRequest(query(p)) },
			[]string{backend.PaymentFilterStatus, backend.PaymentFilterMethod},
			presentPayment), nil
	case Activity:
		return newList(qc, func(p listctl.Params) querycache.Request { return b.Staff.ActivityLogsRequest(query(p)) },
			[]string{backend.ActivityFilterStaffID, backend.ActivityFilterAction, backend.ActivityFilterTable},
			presentActivity), nil
	}
	return nil, ErrUnknownVertical
}
