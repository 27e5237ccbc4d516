package model

import "fmt"

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "Pending"
	PaymentCompleted         PaymentStatus = "Completed"
	PaymentFailed            PaymentStatus = "Failed"
	PaymentPartiallyRefunded PaymentStatus = "Partially_Refunded"
	PaymentRefunded          PaymentStatus = "Refunded"
)

// PaymentStatuses lists every payment status.
var PaymentStatuses = []PaymentStatus{
	PaymentPending, PaymentCompleted, PaymentFailed, PaymentPartiallyRefunded, PaymentRefunded,
}

// Payment is money received against a booking.
type Payment struct {
	PaymentID       int64         `json:"payment_id" gorm:"primaryKey"`
	BookingID       int64         `json:"booking_id" gorm:"index"`
	Amount          Money         `json:"amount"`
	PaymentMethod   string        `json:"payment_method" gorm:"size:32;index"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"size:24;index"`
	TransactionCode string        `json:"transaction_code" gorm:"size:64;index"`
	RefundAmount    Money         `json:"refund_amount"`
	PaymentDate     string        `json:"payment_date,omitempty" gorm:"size:10"`
}

// Refundable returns the amount still available for refund.
func (p Payment) Refundable() Money {
	rest := p.Amount - p.RefundAmount
	if rest < 0 {
		return 0
	}
	return rest.Round()
}

// StatusAfterRefund derives the status once refund is applied on top of existing refunds.
func (p Payment) StatusAfterRefund(refund Money) PaymentStatus {
	if (p.RefundAmount + refund).Round() >= p.Amount.Round() {
		return PaymentRefunded
	}
	return PaymentPartiallyRefunded
}

// Label is the human readable identifier used in confirmations.
func (p Payment) Label() string {
	if p.TransactionCode != "" {
		return fmt.Sprintf("Payment %s", p.TransactionCode)
	}
	return fmt.Sprintf("Payment #%d", p.PaymentID)
}

// PaymentStatusSummary aggregates payments for one status.
type PaymentStatusSummary struct {
	Status PaymentStatus `json:"status"`
	Count  int           `json:"count"`
	Amount Money         `json:"amount"`
}

// PaymentSummary is the payments dashboard overview.
type PaymentSummary struct {
	TotalAmount    Money                  `json:"total_amount"`
	RefundedAmount Money                  `json:"refunded_amount"`
	ByStatus       []PaymentStatusSummary `json:"by_status"`
}
