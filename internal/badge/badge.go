// Package badge maps status enums to display labels and style classes.
package badge

import (
	"strings"

	"rental-admin-backend/internal/model"
)

// Badge is a rendered status pill.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// Table maps raw enum values to badges.
type Table map[string]Badge

const defaultClass = "bg-gray-100 text-gray-800"

// Lookup returns the badge for value, falling back to the raw value in
// neutral style. An empty value renders as "Unknown".
func (t Table) Lookup(value string) Badge {
	if b, ok := t[value]; ok {
		return b
	}
	if value == "" {
		return Badge{Label: "Unknown", Class: defaultClass}
	}
	return Badge{Label: strings.ReplaceAll(value, "_", " "), Class: defaultClass}
}

var (
	Booking = Table{
		string(model.BookingPending):   {Label: "Pending", Class: "bg-yellow-100 text-yellow-800"},
		string(model.BookingConfirmed): {Label: "Confirmed", Class: "bg-blue-100 text-blue-800"},
		string(model.BookingActive):    {Label: "Active", Class: "bg-green-100 text-green-800"},
		string(model.BookingCompleted): {Label: "Completed", Class: "bg-gray-100 text-gray-800"},
		string(model.BookingCancelled): {Label: "Cancelled", Class: "bg-red-100 text-red-800"},
		string(model.BookingOverdue):   {Label: "Overdue", Class: "bg-orange-100 text-orange-800"},
	}

	Damage = Table{
		string(model.DamageReported): {Label: "Reported", Class: "bg-red-100 text-red-800"},
		string(model.DamageAssessed): {Label: "Assessed", Class: "bg-yellow-100 text-yellow-800"},
		string(model.DamageRepaired): {Label: "Repaired", Class: "bg-blue-100 text-blue-800"},
		string(model.DamageClosed):   {Label: "Closed", Class: "bg-green-100 text-green-800"},
	}

	Service = Table{
		string(model.ServiceScheduled):  {Label: "Scheduled", Class: "bg-blue-100 text-blue-800"},
		string(model.ServiceInProgress): {Label: "In Progress", Class: "bg-yellow-100 text-yellow-800"},
		string(model.ServiceCompleted):  {Label: "Completed", Class: "bg-green-100 text-green-800"},
		string(model.ServiceOverdue):    {Label: "Overdue", Class: "bg-red-100 text-red-800"},
		string(model.ServiceCancelled):  {Label: "Cancelled", Class: "bg-gray-100 text-gray-800"},
	}

	Payment = Table{
		string(model.PaymentPending):           {Label: "Pending", Class: "bg-yellow-100 text-yellow-800"},
		string(model.PaymentCompleted):         {Label: "Completed", Class: "bg-green-100 text-green-800"},
		string(model.PaymentFailed):            {Label: "Failed", Class: "bg-red-100 text-red-800"},
		string(model.PaymentPartiallyRefunded): {Label: "Partially Refunded", Class: "bg-purple-100 text-purple-800"},
		string(model.PaymentRefunded):          {Label: "Refunded", Class: "bg-indigo-100 text-indigo-800"},
	}

	Staff = Table{
		string(model.StaffActive):     {Label: "Active", Class: "bg-green-100 text-green-800"},
		string(model.StaffTerminated): {Label: "Terminated", Class: "bg-red-100 text-red-800"},
	}

	Activity = Table{
		string(model.ActionCreate): {Label: "Create", Class: "bg-green-100 text-green-800"},
		string(model.ActionUpdate): {Label: "Update", Class: "bg-blue-100 text-blue-800"},
		string(model.ActionDelete): {Label: "Delete", Class: "bg-red-100 text-red-800"},
		string(model.ActionLogin):  {Label: "Login", Class: "bg-purple-100 text-purple-800"},
		string(model.ActionLogout): {Label: "Logout", Class: "bg-gray-100 text-gray-800"},
	}

	Availability = Table{
		"true":  {Label: "Active", Class: "bg-green-100 text-green-800"},
		"false": {Label: "Inactive", Class: "bg-gray-100 text-gray-800"},
	}
)

// Catalog is every table by enum name.
var Catalog = map[string]Table{
	"booking_status":  Booking,
	"damage_status":   Damage,
	"service_status":  Service,
	"payment_status":  Payment,
	"staff_status":    Staff,
	"activity_action": Activity,
	"car_model_state": Availability,
}

func ForBooking(s model.BookingStatus) Badge { return Booking.Lookup(string(s)) }
func ForDamage(s model.DamageStatus) Badge   { return Damage.Lookup(string(s)) }
func ForService(s model.ServiceStatus) Badge { return Service.Lookup(string(s)) }
func ForPayment(s model.PaymentStatus) Badge { return Payment.Lookup(string(s)) }
func ForStaff(r model.StaffRecord) Badge     { return Staff.Lookup(string(r.Status())) }

func ForActivity(a model.ActivityAction) Badge { return Activity.Lookup(string(a)) }

func ForCarModel(active bool) Badge {
	if active {
		return Availability["true"]
	}
	return Availability["false"]
}
