package model

import (
	"errors"
	"fmt"
)

// DamageStatus is the state of a damage incident.
type DamageStatus string

const (
	DamageReported DamageStatus = "Reported"
	DamageAssessed DamageStatus = "Assessed"
	DamageRepaired DamageStatus = "Repaired"
	DamageClosed   DamageStatus = "Closed"
)

// DamageStatuses lists the workflow in order.
var DamageStatuses = []DamageStatus{DamageReported, DamageAssessed, DamageRepaired, DamageClosed}

// ErrBackwardTransition is returned when a damage report would move back in its workflow.
var ErrBackwardTransition = errors.New("damage report cannot move backward in its workflow")

// ErrUnknownStatus is returned for a status outside the enum.
var ErrUnknownStatus = errors.New("unknown status")

// Rank returns the position of the status in the workflow, or -1.
func (s DamageStatus) Rank() int {
	for i, v := range DamageStatuses {
		if v == s {
			return i
		}
	}
	return -1
}

// DamageReport records a damage incident on a rented vehicle.
type DamageReport struct {
	IncidentID          int64        `json:"incident_id" gorm:"primaryKey"`
	BookingID           int64        `json:"booking_id" gorm:"index"`
	VehicleID           int64        `json:"vehicle_id" gorm:"index"`
	CustomerID          int64        `json:"customer_id" gorm:"index"`
	IncidentDescription string       `json:"incident_description"`
	DamageCost          Money        `json:"damage_cost"`
	Status              DamageStatus `json:"status" gorm:"size:16;index"`
	DateRecorded        string       `json:"date_recorded" gorm:"size:10;index"`
	ResolvedDate        *string      `json:"resolved_date" gorm:"size:10"`
}

// Label is the human readable identifier used in confirmations.
func (d DamageReport) Label() string {
	return fmt.Sprintf("Incident #%d", d.IncidentID)
}

// DamageTransition is the outcome of a status change request.
type DamageTransition struct {
	Status       DamageStatus
	ResolvedDate *string
}

// TransitionDamage validates moving from -> to and derives the resolved date.
// Skipping forward is allowed. Backward moves fail unless allowBackward is set.
// Entering Closed stamps today when no resolved date is given; any other
// target clears it.
func TransitionDamage(from, to DamageStatus, resolved *string, today string, allowBackward bool) (DamageTransition, error) {
	if to.Rank() < 0 {
		return DamageTransition{}, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from.Rank() >= 0 && to.Rank() < from.Rank() && !allowBackward {
		return DamageTransition{}, fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, from, to)
	}

	t := DamageTransition{Status: to}
	if to == DamageClosed {
		if resolved != nil && *resolved != "" {
			r := *resolved
			t.ResolvedDate = &r
		} else {
			r := today
			t.ResolvedDate = &r
		}
	}
	return t, nil
}

// DamageStatusSummary aggregates incidents for one status.
type DamageStatusSummary struct {
	Status    DamageStatus `json:"status"`
	Count     int          `json:"count"`
	TotalCost Money        `json:"total_cost"`
}

// DamageSummary is the damage dashboard overview.
type DamageSummary struct {
	TotalIncidents int                   `json:"total_incidents"`
	TotalCost      Money                 `json:"total_cost"`
	ByStatus       []DamageStatusSummary `json:"by_status"`
}
