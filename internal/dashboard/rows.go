package dashboard

import (
	"rental-admin-backend/internal/badge"
	"rental-admin-backend/internal/model"
)

// StaffRow is a staff table row.
type StaffRow struct {
	model.StaffRecord
	Name        string      `json:"name"`
	Active      bool        `json:"is_active"`
	StatusBadge badge.Badge `json:"status_badge"`
}

func presentStaff(r model.StaffRecord) StaffRow {
	return StaffRow{StaffRecord: r, Name: r.DisplayName(), Active: r.IsActive(), StatusBadge: badge.ForStaff(r)}
}

// BookingRow is a bookings table row. DisplayTotal is the derived final
// total; TotalsDiverge flags a stored total that disagrees with it.
type BookingRow struct {
	model.Booking
	DisplayTotal  model.Money `json:"display_total"`
	TotalsDiverge bool        `json:"totals_diverge"`
	Cancellable   bool        `json:"cancellable"`
	StatusBadge   badge.Badge `json:"status_badge"`
}

func presentBooking(b model.Booking) BookingRow {
	return BookingRow{
		Booking:       b,
		DisplayTotal:  b.DerivedFinalTotal(),
		TotalsDiverge: b.TotalsDiverge(),
		Cancellable:   b.Cancellable(),
		StatusBadge:   badge.ForBooking(b.BookingStatus),
	}
}

// DamageRow is a damage reports table row. NextStatuses lists the statuses
// the status dropdown offers under the configured workflow policy.
type DamageRow struct {
	model.DamageReport
	StatusBadge  badge.Badge          `json:"status_badge"`
	NextStatuses []model.DamageStatus `json:"next_statuses"`
}

func damagePresenter(allowBackward bool) func(model.DamageReport) DamageRow {
	return func(r model.DamageReport) DamageRow {
		next := []model.DamageStatus{}
		for _, s := range model.DamageStatuses {
			if s == r.Status {
				continue
			}
			if _, err := model.TransitionDamage(r.Status, s, nil, "", allowBackward); err == nil {
				next = append(next, s)
			}
		}
		return DamageRow{DamageReport: r, StatusBadge: badge.ForDamage(r.Status), NextStatuses: next}
	}
}

// ServiceRow is a maintenance table row.
type ServiceRow struct {
	model.ServiceRecord
	StatusBadge badge.Badge `json:"status_badge"`
}

func presentService(r model.ServiceRecord) ServiceRow {
	return ServiceRow{ServiceRecord: r, StatusBadge: badge.ForService(r.Status)}
}

// CarModelRow is a car model table row with its decoded feature list.
type CarModelRow struct {
	model.CarModel
	DisplayName string      `json:"label"`
	FeatureList []string    `json:"features"`
	StateBadge  badge.Badge `json:"state_badge"`
}

func presentCarModel(c model.CarModel) CarModelRow {
	features := c.Features()
	if features == nil {
		features = []string{}
	}
	return CarModelRow{CarModel: c, DisplayName: c.Label(), FeatureList: features, StateBadge: badge.ForCarModel(c.IsActive)}
}

// PaymentRow is a payments table row.
type PaymentRow struct {
	model.Payment
	Refundable  model.Money `json:"refundable"`
	StatusBadge badge.Badge `json:"status_badge"`
}

func presentPayment(p model.Payment) PaymentRow {
	return PaymentRow{Payment: p, Refundable: p.Refundable(), StatusBadge: badge.ForPayment(p.PaymentStatus)}
}

// ActivityRow is an activity log row.
type ActivityRow struct {
	model.ActivityLogEntry
	ActionBadge badge.Badge `json:"action_badge"`
}

func presentActivity(e model.ActivityLogEntry) ActivityRow {
	return ActivityRow{ActivityLogEntry: e, ActionBadge: badge.ForActivity(e.Action)}
}
