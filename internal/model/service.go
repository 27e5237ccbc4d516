package model

import "fmt"

// ServiceStatus is the state of a maintenance job.
type ServiceStatus string

const (
	ServiceScheduled  ServiceStatus = "Scheduled"
	ServiceInProgress ServiceStatus = "In Progress"
	ServiceCompleted  ServiceStatus = "Completed"
	ServiceOverdue    ServiceStatus = "Overdue"
	ServiceCancelled  ServiceStatus = "Cancelled"
)

// ServiceStatuses lists every service status.
var ServiceStatuses = []ServiceStatus{ServiceScheduled, ServiceInProgress, ServiceCompleted, ServiceOverdue, ServiceCancelled}

// ServiceRecord is a maintenance job on a vehicle.
type ServiceRecord struct {
	ServiceID       int64         `json:"service_id" gorm:"primaryKey"`
	VehicleID       int64         `json:"vehicle_id" gorm:"index"`
	ServiceType     string        `json:"service_type" gorm:"size:64;index"`
	ServiceDate     string        `json:"service_date" gorm:"size:10"`
	NextServiceDate *string       `json:"next_service_date" gorm:"size:10"`
	ServiceCost     Money         `json:"service_cost"`
	Status          ServiceStatus `json:"status" gorm:"size:16;index"`
	PerformedBy     string        `json:"performed_by" gorm:"size:128"`
	Notes           string        `json:"notes,omitempty"`
}

// Label is the human readable identifier used in confirmations.
func (s ServiceRecord) Label() string {
	return fmt.Sprintf("Service #%d (%s)", s.ServiceID, s.ServiceType)
}
