package model

import (
	"errors"
	"fmt"
	"math"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingActive    BookingStatus = "Active"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingOverdue   BookingStatus = "Overdue"
)

// BookingStatuses lists every booking status in display order.
var BookingStatuses = []BookingStatus{
	BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled, BookingOverdue,
}

// Booking is a vehicle reservation.
type Booking struct {
	BookingID       int64         `json:"booking_id" gorm:"primaryKey"`
	CustomerID      int64         `json:"customer_id" gorm:"index"`
	CustomerName    string        `json:"customer_name,omitempty" gorm:"size:128"`
	VehicleID       int64         `json:"vehicle_id" gorm:"index"`
	PickupDate      string        `json:"pickup_date" gorm:"size:10;index"`
	ReturnDate      string        `json:"return_date" gorm:"size:10"`
	BookingStatus   BookingStatus `json:"booking_status" gorm:"size:16;index"`
	CalculatedTotal Money         `json:"calculated_total"`
	DiscountAmount  Money         `json:"discount_amount"`
	ExtraCharges    Money         `json:"extra_charges"`
	FinalTotal      Money         `json:"final_total"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
}

// ErrDiscountExceedsTotal is returned when a discount is larger than the calculated total.
var ErrDiscountExceedsTotal = errors.New("discount exceeds calculated total")

// FinalTotal computes calculated - discount + extra, rounded to cents.
func FinalTotal(calculated, discount, extra Money) (Money, error) {
	if discount < 0 || extra < 0 {
		return 0, fmt.Errorf("negative adjustment: discount=%s extra=%s", discount, extra)
	}
	if discount > calculated {
		return 0, ErrDiscountExceedsTotal
	}
	return (calculated - discount + extra).Round(), nil
}

// DerivedFinalTotal is the total the dashboard presents. The formula is the
// source of truth; the stored FinalTotal is only used when the components
// cannot produce a valid total.
func (b Booking) DerivedFinalTotal() Money {
	total, err := FinalTotal(b.CalculatedTotal, b.DiscountAmount, b.ExtraCharges)
	if err != nil {
		return b.FinalTotal
	}
	return total
}

// TotalsDiverge reports whether the stored final total disagrees with the formula.
func (b Booking) TotalsDiverge() bool {
	return math.Abs(float64(b.DerivedFinalTotal()-b.FinalTotal)) >= 0.005
}

// Cancellable reports whether the booking can still be cancelled.
func (b Booking) Cancellable() bool {
	switch b.BookingStatus {
	case BookingCompleted, BookingCancelled:
		return false
	}
	return true
}

// Label is the human readable identifier used in confirmations.
func (b Booking) Label() string {
	return fmt.Sprintf("Booking #%d", b.BookingID)
}
