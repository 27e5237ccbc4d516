package model

import "time"

// StaffRecord is an employee of the rental business.
type StaffRecord struct {
	StaffID         int64   `json:"staff_id" gorm:"primaryKey"`
	EmployeeID      string  `json:"employee_id" gorm:"uniqueIndex;size:32;not null"`
	FirstName       string  `json:"first_name,omitempty" gorm:"size:64"`
	LastName        string  `json:"last_name,omitempty" gorm:"size:64"`
	Email           string  `json:"email,omitempty" gorm:"size:128"`
	JobTitle        string  `json:"job_title" gorm:"size:64;index"`
	Department      string  `json:"department" gorm:"size:64;index"`
	BranchID        int64   `json:"branch_id" gorm:"index"`
	Salary          Money   `json:"salary"`
	EmploymentType  string  `json:"employment_type" gorm:"size:32;index"`
	HireDate        string  `json:"hire_date" gorm:"size:10"`
	TerminationDate *string `json:"termination_date" gorm:"size:10"`
}

// StaffStatus is the derived employment state of a StaffRecord.
type StaffStatus string

const (
	StaffActive     StaffStatus = "active"
	StaffTerminated StaffStatus = "terminated"
)

// IsActive reports whether the record has no termination date.
func (s StaffRecord) IsActive() bool {
	return s.TerminationDate == nil || *s.TerminationDate == ""
}

// Status derives the employment state from the termination date.
func (s StaffRecord) Status() StaffStatus {
	if s.IsActive() {
		return StaffActive
	}
	return StaffTerminated
}

// DisplayName is the human readable identifier used in confirmations.
func (s StaffRecord) DisplayName() string {
	name := s.FirstName
	if s.LastName != "" {
		if name != "" {
			name += " "
		}
		name += s.LastName
	}
	if name == "" {
		return s.EmployeeID
	}
	return name + " (" + s.EmployeeID + ")"
}

// StaffOverview holds the counts shown on the staff dashboard.
type StaffOverview struct {
	Total        int            `json:"total"`
	Active       int            `json:"active"`
	Terminated   int            `json:"terminated"`
	ByDepartment map[string]int `json:"by_department"`
}

// ActivityAction is the kind of change recorded in the audit trail.
type ActivityAction string

const (
	ActionCreate ActivityAction = "CREATE"
	ActionUpdate ActivityAction = "UPDATE"
	ActionDelete ActivityAction = "DELETE"
	ActionLogin  ActivityAction = "LOGIN"
	ActionLogout ActivityAction = "LOGOUT"
)

// ActivityLogEntry is one append-only audit record. OldValues and NewValues
// hold serialized snapshots exactly as the backend stored them.
type ActivityLogEntry struct {
	LogID     int64          `json:"log_id" gorm:"primaryKey"`
	StaffID   int64          `json:"staff_id" gorm:"index"`
	Action    ActivityAction `json:"action" gorm:"size:16;index"`
	Table     string         `json:"table_name" gorm:"column:table_name;size:64"`
	RecordID  int64          `json:"record_id"`
	OldValues string         `json:"old_values,omitempty"`
	NewValues string         `json:"new_values,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName overrides the gorm table name.
func (ActivityLogEntry) TableName() string {
	return "activity_logs"
}
