package dashboard

import "rental-admin-backend/internal/model"

// StaffForm backs the create and update staff actions.
type StaffForm struct {
	StaffID        int64       `json:"staff_id"`
	EmployeeID     string      `json:"employee_id" validate:"required"`
	FirstName      string      `json:"first_name" validate:"required"`
	LastName       string      `json:"last_name" validate:"required"`
	Email          string      `json:"email" validate:"omitempty,email"`
	JobTitle       string      `json:"job_title" validate:"required"`
	Department     string      `json:"department" validate:"required"`
	BranchID       int64       `json:"branch_id" validate:"positive"`
	Salary         model.Money `json:"salary" validate:"positive"`
	EmploymentType string      `json:"employment_type" validate:"required"`
	HireDate       string      `json:"hire_date" validate:"required,date"`
}

var staffMessages = map[string]string{
	"employee_id":     "Employee ID is required",
	"first_name":      "First name is required",
	"last_name":       "Last name is required",
	"email":           "Email must be a valid address",
	"job_title":       "Job title is required",
	"department":      "Department is required",
	"branch_id":       "Branch is required",
	"salary":          "Salary must be a positive number",
	"employment_type": "Employment type is required",
	"hire_date":       "Hire date must be a valid date",
}

// TerminateStaffForm backs the terminate action.
type TerminateStaffForm struct {
	StaffID         int64  `json:"staff_id"`
	TerminationDate string `json:"termination_date" validate:"required,date"`
}

// StaffBranchForm backs the branch transfer action.
type StaffBranchForm struct {
	StaffID  int64 `json:"staff_id"`
	BranchID int64 `json:"branch_id" validate:"positive"`
}

// StaffRefForm identifies a staff member for deletion.
type StaffRefForm struct {
	StaffID int64 `json:"staff_id"`
}

// DamageForm backs the create damage report action.
type DamageForm struct {
	BookingID           int64       `json:"booking_id" validate:"positive"`
	VehicleID           int64       `json:"vehicle_id" validate:"positive"`
	CustomerID          int64       `json:"customer_id" validate:"positive"`
	IncidentDescription string      `json:"incident_description" validate:"required"`
	DamageCost          model.Money `json:"damage_cost" validate:"nonnegative"`
	DateRecorded        string      `json:"date_recorded" validate:"required,date"`
}

var damageMessages = map[string]string{
	"booking_id":           "Booking ID is required",
	"vehicle_id":           "Vehicle ID is required",
	"customer_id":          "Customer ID is required",
	"incident_description": "Description is required",
	"damage_cost":          "Damage cost must be zero or more",
	"date_recorded":        "Date recorded must be a valid date",
}

// DamageStatusForm backs the damage status change.
type DamageStatusForm struct {
	IncidentID    int64              `json:"incident_id"`
	CurrentStatus model.DamageStatus `json:"current_status"`
	Status        model.DamageStatus `json:"status" validate:"required"`
	ResolvedDate  string             `json:"resolved_date" validate:"omitempty,date"`
}

// DamageCostForm backs the damage cost update.
type DamageCostForm struct {
	IncidentID int64       `json:"incident_id"`
	DamageCost model.Money `json:"damage_cost" validate:"nonnegative"`
}

// DamageRefForm identifies an incident for deletion.
type DamageRefForm struct {
	IncidentID int64 `json:"incident_id"`
}

// BookingStatusForm backs the booking status change.
type BookingStatusForm struct {
	BookingID     int64               `json:"booking_id"`
	CurrentStatus model.BookingStatus `json:"current_status"`
	BookingStatus model.BookingStatus `json:"booking_status" validate:"required"`
}

// BookingTotalsForm backs the totals editor. FinalTotal is derived.
type BookingTotalsForm struct {
	BookingID       int64       `json:"booking_id"`
	CalculatedTotal model.Money `json:"calculated_total"`
	DiscountAmount  model.Money `json:"discount_amount" validate:"nonnegative"`
	ExtraCharges    model.Money `json:"extra_charges" validate:"nonnegative"`
	FinalTotal      model.Money `json:"final_total"`
}

// CancelBookingForm backs the cancel booking action.
type CancelBookingForm struct {
	BookingID     int64               `json:"booking_id"`
	CurrentStatus model.BookingStatus `json:"current_status"`
	Reason        string              `json:"reason" validate:"required"`
}

// ServiceForm backs the create service record action.
type ServiceForm struct {
	VehicleID       int64               `json:"vehicle_id" validate:"positive"`
	ServiceType     string              `json:"service_type" validate:"required"`
	ServiceDate     string              `json:"service_date" validate:"required,date"`
	NextServiceDate string              `json:"next_service_date" validate:"omitempty,date"`
	ServiceCost     model.Money         `json:"service_cost" validate:"nonnegative"`
	Status          model.ServiceStatus `json:"status" validate:"required"`
	PerformedBy     string              `json:"performed_by" validate:"required"`
	Notes           string              `json:"notes"`
}

var serviceMessages = map[string]string{
	"vehicle_id":        "Vehicle ID is required",
	"service_type":      "Service type is required",
	"service_date":      "Service date must be a valid date",
	"next_service_date": "Next service date must be a valid date",
	"service_cost":      "Service cost must be zero or more",
	"status":            "Status is required",
	"performed_by":      "Performed by is required",
}

// ServiceStatusForm backs the service status change.
type ServiceStatusForm struct {
	ServiceID int64               `json:"service_id"`
	Status    model.ServiceStatus `json:"status" validate:"required"`
}

// CarModelForm backs the create car model action.
type CarModelForm struct {
	Make              string      `json:"make" validate:"required"`
	Model             string      `json:"model" validate:"required"`
	Year              int         `json:"year" validate:"gte=1900,lte=2100"`
	VehicleType       string      `json:"vehicle_type" validate:"required"`
	FuelType          string      `json:"fuel_type" validate:"required"`
	Transmission      string      `json:"transmission" validate:"required"`
	SeatingCapacity   int         `json:"seating_capacity" validate:"positive"`
	Doors             int         `json:"doors" validate:"positive"`
	StandardDailyRate model.Money `json:"standard_daily_rate" validate:"positive"`
	StandardFeatures  []string    `json:"standard_features"`
	IsActive          bool        `json:"is_active"`
}

var carModelMessages = map[string]string{
	"make":                "Make is required",
	"model":               "Model is required",
	"year":                "Year must be a valid model year",
	"vehicle_type":        "Vehicle type is required",
	"fuel_type":           "Fuel type is required",
	"transmission":        "Transmission is required",
	"seating_capacity":    "Seating capacity must be a positive number",
	"doors":               "Doors must be a positive number",
	"standard_daily_rate": "Daily rate must be a positive number",
}

// DailyRateForm backs the daily rate update.
type DailyRateForm struct {
	ModelID           int64       `json:"model_id"`
	StandardDailyRate model.Money `json:"standard_daily_rate" validate:"positive"`
}

// CarModelActiveForm backs the availability toggle.
type CarModelActiveForm struct {
	ModelID  int64 `json:"model_id"`
	IsActive bool  `json:"is_active"`
}

// CarModelRefForm identifies a car model for deletion.
type CarModelRefForm struct {
	ModelID int64 `json:"model_id"`
}

// PaymentStatusForm backs the payment status change.
type PaymentStatusForm struct {
	PaymentID     int64               `json:"payment_id"`
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"required"`
}

// RefundForm backs the refund action. Refundable is the remaining amount.
type RefundForm struct {
	PaymentID    int64       `json:"payment_id"`
	Refundable   model.Money `json:"refundable"`
	RefundAmount model.Money `json:"refund_amount" validate:"positive"`
}
