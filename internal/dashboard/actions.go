package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rental-admin-backend/internal/action"
	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/notification"
	"rental-admin-backend/internal/parse"
)

// Action names.
const (
	ActionCreateStaff         = "create_staff"
	ActionUpdateStaff         = "update_staff"
	ActionTerminateStaff      = "terminate_staff"
	ActionTransferStaff       = "transfer_staff"
	ActionDeleteStaff         = "delete_staff"
	ActionCreateDamageReport  = "create_damage_report"
	ActionUpdateDamageStatus  = "update_damage_status"
	ActionUpdateDamageCost    = "update_damage_cost"
	ActionDeleteDamageReport  = "delete_damage_report"
	ActionUpdateBookingStatus = "update_booking_status"
	ActionUpdateBookingTotals = "update_booking_totals"
	ActionCancelBooking       = "cancel_booking"
	ActionCreateServiceRecord = "create_service_record"
	ActionUpdateServiceStatus = "update_service_status"
	ActionCreateCarModel      = "create_car_model"
	ActionUpdateDailyRate     = "update_daily_rate"
	ActionSetCarModelActive   = "set_car_model_active"
	ActionDeleteCarModel      = "delete_car_model"
	ActionUpdatePaymentStatus = "update_payment_status"
	ActionRefundPayment       = "refund_payment"
)

var errNotFound = errors.New("record not found")

type actionFactory func(n notification.Notifier, done func()) action.Handle

func build[F any](def action.Definition[F]) actionFactory {
	return func(n notification.Notifier, done func()) action.Handle {
		return action.New(def, n, done)
	}
}

// loadEntity fetches a record for an edit flow. A zero id in the decoded
// record means the backend returned nothing usable.
func loadEntity[T any](ctx context.Context, id int64, get func(context.Context, int64) (T, error), idOf func(T) int64) (T, error) {
	rec, err := get(ctx, id)
	if err != nil {
		return rec, err
	}
	if idOf(rec) == 0 {
		return rec, fmt.Errorf("%w: %d", errNotFound, id)
	}
	return rec, nil
}

func memberOf[S ~string](value S, set []S) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func staffID(r model.StaffRecord) int64     { return r.StaffID }
func bookingID(b model.Booking) int64       { return b.BookingID }
func incidentID(r model.DamageReport) int64 { return r.IncidentID }
func serviceID(r model.ServiceRecord) int64 { return r.ServiceID }
func carModelID(c model.CarModel) int64     { return c.ModelID }
func paymentID(p model.Payment) int64       { return p.PaymentID }

func staffInput(f StaffForm) backend.StaffInput {
	return backend.StaffInput{
		EmployeeID:     f.EmployeeID,
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Email:          f.Email,
		JobTitle:       f.JobTitle,
		Department:     f.Department,
		BranchID:       f.BranchID,
		Salary:         float64(f.Salary),
		EmploymentType: f.EmploymentType,
		HireDate:       f.HireDate,
	}
}

// catalog declares every action of the dashboard.
func (d *Dashboard) catalog() map[string]actionFactory {
	b := d.backend
	allowBackward := d.workflow.AllowBackwardDamageTransitions

	loadStaff := func(ctx context.Context, id int64) (model.StaffRecord, error) {
		return loadEntity(ctx, id, b.Staff.Get, staffID)
	}
	loadBooking := func(ctx context.Context, id int64) (model.Booking, error) {
		return loadEntity(ctx, id, b.Bookings.Get, bookingID)
	}
	loadDamage := func(ctx context.Context, id int64) (model.DamageReport, error) {
		return loadEntity(ctx, id, b.Damage.Get, incidentID)
	}
	loadCarModel := func(ctx context.Context, id int64) (model.CarModel, error) {
		return loadEntity(ctx, id, b.CarModels.Get, carModelID)
	}
	loadPayment := func(ctx context.Context, id int64) (model.Payment, error) {
		return loadEntity(ctx, id, b.Payments.Get, paymentID)
	}

	return map[string]actionFactory{
		ActionCreateStaff: build(action.Definition[StaffForm]{
			Name: ActionCreateStaff, Vertical: string(Staff), Title: "create staff member",
			Defaults: func() StaffForm { return StaffForm{HireDate: parse.Today()} },
			Messages: staffMessages,
			ReadOnly: []string{"staff_id"},
			Submit: func(ctx context.Context, f StaffForm) error {
				_, err := b.Staff.Create(ctx, staffInput(f))
				return err
			},
			SuccessMessage: "Staff member created",
			FailureMessage: "Failed to create staff member",
		}),

		ActionUpdateStaff: build(action.Definition[StaffForm]{
			Name: ActionUpdateStaff, Vertical: string(Staff), Title: "update staff member",
			Messages: staffMessages,
			ReadOnly: []string{"staff_id", "employee_id"},
			Load: func(ctx context.Context, id int64) (StaffForm, string, error) {
				r, err := loadStaff(ctx, id)
				if err != nil {
					return StaffForm{}, "", err
				}
				return StaffForm{
					StaffID: r.StaffID, EmployeeID: r.EmployeeID, FirstName: r.FirstName, LastName: r.LastName,
					Email: r.Email, JobTitle: r.JobTitle, Department: r.Department, BranchID: r.BranchID,
					Salary: r.Salary, EmploymentType: r.EmploymentType, HireDate: parse.NormalizeDate(r.HireDate),
				}, r.DisplayName(), nil
			},
			Submit: func(ctx context.Context, f StaffForm) error {
				_, err := b.Staff.Update(ctx, f.StaffID, staffInput(f))
				return err
			},
			SuccessMessage: "Staff member updated",
			FailureMessage: "Failed to update staff member",
		}),

		ActionTerminateStaff: build(action.Definition[TerminateStaffForm]{
			Name: ActionTerminateStaff, Vertical: string(Staff), Title: "terminate staff member",
			Messages: map[string]string{"termination_date": "Termination date must be a valid date"},
			ReadOnly: []string{"staff_id"},
			Load: func(ctx context.Context, id int64) (TerminateStaffForm, string, error) {
				r, err := loadStaff(ctx, id)
				if err != nil {
					return TerminateStaffForm{}, "", err
				}
				return TerminateStaffForm{StaffID: r.StaffID, TerminationDate: parse.Today()}, r.DisplayName(), nil
			},
			Submit: func(ctx context.Context, f TerminateStaffForm) error {
				_, err := b.Staff.Terminate(ctx, f.StaffID, parse.NormalizeDate(f.TerminationDate))
				return err
			},
			SuccessMessage: "Staff member terminated",
			FailureMessage: "Failed to terminate staff member",
		}),

		ActionTransferStaff: build(action.Definition[StaffBranchForm]{
			Name: ActionTransferStaff, Vertical: string(Staff), Title: "transfer staff member",
			Messages: map[string]string{"branch_id": "Branch is required"},
			ReadOnly: []string{"staff_id"},
			Load: func(ctx context.Context, id int64) (StaffBranchForm, string, error) {
				r, err := loadStaff(ctx, id)
				if err != nil {
					return StaffBranchForm{}, "", err
				}
				return StaffBranchForm{StaffID: r.StaffID, BranchID: r.BranchID}, r.DisplayName(), nil
			},
			Submit: func(ctx context.Context, f StaffBranchForm) error {
				_, err := b.Staff.UpdateBranch(ctx, f.StaffID, f.BranchID)
				return err
			},
			SuccessMessage: "Branch updated",
			FailureMessage: "Failed to update branch",
		}),

		ActionDeleteStaff: build(action.Definition[StaffRefForm]{
			Name: ActionDeleteStaff, Vertical: string(Staff), Title: "delete staff member",
			ReadOnly: []string{"staff_id"},
			Load: func(ctx context.Context, id int64) (StaffRefForm, string, error) {
				r, err := loadStaff(ctx, id)
				if err != nil {
					return StaffRefForm{}, "", err
				}
				return StaffRefForm{StaffID: r.StaffID}, r.DisplayName(), nil
			},
			Confirm: func(_ StaffRefForm, target string) string {
				return fmt.Sprintf("Delete staff member %s? This cannot be undone.", target)
			},
			Submit: func(ctx context.Context, f StaffRefForm) error {
				return b.Staff.Delete(ctx, f.StaffID)
			},
			SuccessMessage: "Staff member deleted",
			FailureMessage: "Failed to delete staff member",
		}),

		ActionCreateDamageReport: build(action.Definition[DamageForm]{
			Name: ActionCreateDamageReport, Vertical: string(Damage), Title: "create damage report",
			Defaults: func() DamageForm { return DamageForm{DateRecorded: parse.Today()} },
			Messages: damageMessages,
			Submit: func(ctx context.Context, f DamageForm) error {
				_, err := b.Damage.Create(ctx, backend.DamageInput{
					BookingID:           f.BookingID,
					VehicleID:           f.VehicleID,
					CustomerID:          f.CustomerID,
					IncidentDescription: f.IncidentDescription,
					DamageCost:          float64(f.DamageCost),
					DateRecorded:        parse.NormalizeDate(f.DateRecorded),
					Status:              string(model.DamageReported),
				})
				return err
			},
			SuccessMessage: "Damage report created",
			FailureMessage: "Failed to create damage report",
		}),

		ActionUpdateDamageStatus: build(action.Definition[DamageStatusForm]{
			Name: ActionUpdateDamageStatus, Vertical: string(Damage), Title: "update damage status",
			Messages: map[string]string{
				"status":        "Status is required",
				"resolved_date": "Resolved date must be a valid date",
			},
			ReadOnly: []string{"incident_id", "current_status"},
			Load: func(ctx context.Context, id int64) (DamageStatusForm, string, error) {
				r, err := loadDamage(ctx, id)
				if err != nil {
					return DamageStatusForm{}, "", err
				}
				f := DamageStatusForm{IncidentID: r.IncidentID, CurrentStatus: r.Status, Status: r.Status}
				if r.ResolvedDate != nil {
					f.ResolvedDate = parse.NormalizeDate(*r.ResolvedDate)
				}
				return f, r.Label(), nil
			},
			Check: func(f DamageStatusForm) map[string]string {
				if f.Status == "" {
					return nil
				}
				_, err := model.TransitionDamage(f.CurrentStatus, f.Status, nil, parse.Today(), allowBackward)
				switch {
				case errors.Is(err, model.ErrUnknownStatus):
					return map[string]string{"status": "Unknown damage status"}
				case errors.Is(err, model.ErrBackwardTransition):
					return map[string]string{"status": fmt.Sprintf("A %s report cannot move back to %s", f.CurrentStatus, f.Status)}
				}
				return nil
			},
			Submit: func(ctx context.Context, f DamageStatusForm) error {
				var resolved *string
				if f.ResolvedDate != "" {
					r := parse.NormalizeDate(f.ResolvedDate)
					resolved = &r
				}
				t, err := model.TransitionDamage(f.CurrentStatus, f.Status, resolved, parse.Today(), allowBackward)
				if err != nil {
					return err
				}
				_, err = b.Damage.UpdateStatus(ctx, f.IncidentID, t)
				return err
			},
			SuccessMessage: "Damage status updated",
			FailureMessage: "Failed to update damage status",
		}),

		ActionUpdateDamageCost: build(action.Definition[DamageCostForm]{
			Name: ActionUpdateDamageCost, Vertical: string(Damage), Title: "update damage cost",
			Messages: map[string]string{"damage_cost": "Damage cost must be zero or more"},
			ReadOnly: []string{"incident_id"},
			Load: func(ctx context.Context, id int64) (DamageCostForm, string, error) {
				r, err := loadDamage(ctx, id)
				if err != nil {
					return DamageCostForm{}, "", err
				}
				return DamageCostForm{IncidentID: r.IncidentID, DamageCost: r.DamageCost}, r.Label(), nil
			},
			Submit: func(ctx context.Context, f DamageCostForm) error {
				_, err := b.Damage.UpdateCost(ctx, f.IncidentID, float64(f.DamageCost.Round()))
				return err
			},
			SuccessMessage: "Damage cost updated",
			FailureMessage: "Failed to update damage cost",
		}),

		ActionDeleteDamageReport: build(action.Definition[DamageRefForm]{
			Name: ActionDeleteDamageReport, Vertical: string(Damage), Title: "delete damage report",
			ReadOnly: []string{"incident_id"},
			Load: func(ctx context.Context, id int64) (DamageRefForm, string, error) {
				r, err := loadDamage(ctx, id)
				if err != nil {
					return DamageRefForm{}, "", err
				}
				return DamageRefForm{IncidentID: r.IncidentID}, r.Label(), nil
			},
			Confirm: func(_ DamageRefForm, target string) string {
				return fmt.Sprintf("Delete damage report %s? This cannot be undone.", target)
			},
			Submit: func(ctx context.Context, f DamageRefForm) error {
				return b.Damage.Delete(ctx, f.IncidentID)
			},
			SuccessMessage: "Damage report deleted",
			FailureMessage: "Failed to delete damage report",
		}),

		ActionUpdateBookingStatus: build(action.Definition[BookingStatusForm]{
			Name: ActionUpdateBookingStatus, Vertical: string(Bookings), Title: "update booking status",
			Messages: map[string]string{"booking_status": "Status is required"},
			ReadOnly: []string{"booking_id", "current_status"},
			Load: func(ctx context.Context, id int64) (BookingStatusForm, string, error) {
				bk, err := loadBooking(ctx, id)
				if err != nil {
					return BookingStatusForm{}, "", err
				}
				return BookingStatusForm{BookingID: bk.BookingID, CurrentStatus: bk.BookingStatus, BookingStatus: bk.BookingStatus}, bk.Label(), nil
			},
			Check: func(f BookingStatusForm) map[string]string {
				if f.BookingStatus != "" && !memberOf(f.BookingStatus, model.BookingStatuses) {
					return map[string]string{"booking_status": "Unknown booking status"}
				}
				return nil
			},
			Submit: func(ctx context.Context, f BookingStatusForm) error {
				_, err := b.Bookings.UpdateStatus(ctx, f.BookingID, f.BookingStatus)
				return err
			},
			SuccessMessage: "Booking status updated",
			FailureMessage: "Failed to update booking status",
		}),

		ActionUpdateBookingTotals: build(action.Definition[BookingTotalsForm]{
			Name: ActionUpdateBookingTotals, Vertical: string(Bookings), Title: "update booking totals",
			Messages: map[string]string{
				"discount_amount": "Discount must be zero or more",
				"extra_charges":   "Extra charges must be zero or more",
			},
			ReadOnly: []string{"booking_id", "calculated_total", "final_total"},
			Load: func(ctx context.Context, id int64) (BookingTotalsForm, string, error) {
				bk, err := loadBooking(ctx, id)
				if err != nil {
					return BookingTotalsForm{}, "", err
				}
				if bk.TotalsDiverge() {
					log.Printf("Booking %d stored final_total %s differs from derived %s", bk.BookingID, bk.FinalTotal, bk.DerivedFinalTotal())
				}
				return BookingTotalsForm{
					BookingID:       bk.BookingID,
					CalculatedTotal: bk.CalculatedTotal,
					DiscountAmount:  bk.DiscountAmount,
					ExtraCharges:    bk.ExtraCharges,
				}, bk.Label(), nil
			},
			Derive: func(f *BookingTotalsForm) {
				if total, err := model.FinalTotal(f.CalculatedTotal, f.DiscountAmount, f.ExtraCharges); err == nil {
					f.FinalTotal = total
				}
			},
			Check: func(f BookingTotalsForm) map[string]string {
				if _, err := model.FinalTotal(f.CalculatedTotal, f.DiscountAmount, f.ExtraCharges); errors.Is(err, model.ErrDiscountExceedsTotal) {
					return map[string]string{"discount_amount": "Discount cannot exceed the calculated total"}
				}
				return nil
			},
			Submit: func(ctx context.Context, f BookingTotalsForm) error {
				total, err := model.FinalTotal(f.CalculatedTotal, f.DiscountAmount, f.ExtraCharges)
				if err != nil {
					return err
				}
				_, err = b.Bookings.UpdateTotals(ctx, f.BookingID, backend.TotalsInput{
					DiscountAmount: float64(f.DiscountAmount.Round()),
					ExtraCharges:   float64(f.ExtraCharges.Round()),
					FinalTotal:     float64(total),
				})
				return err
			},
			SuccessMessage: "Booking totals updated",
			FailureMessage: "Failed to update booking totals",
		}),

		ActionCancelBooking: build(action.Definition[CancelBookingForm]{
			Name: ActionCancelBooking, Vertical: string(Bookings), Title: "cancel booking",
			Messages: map[string]string{"reason": "A cancellation reason is required"},
			ReadOnly: []string{"booking_id", "current_status"},
			Load: func(ctx context.Context, id int64) (CancelBookingForm, string, error) {
				bk, err := loadBooking(ctx, id)
				if err != nil {
					return CancelBookingForm{}, "", err
				}
				return CancelBookingForm{BookingID: bk.BookingID, CurrentStatus: bk.BookingStatus}, bk.Label(), nil
			},
			Check: func(f CancelBookingForm) map[string]string {
				if !(model.Booking{BookingStatus: f.CurrentStatus}).Cancellable() {
					return map[string]string{"booking_status": fmt.Sprintf("A %s booking cannot be cancelled", f.CurrentStatus)}
				}
				return nil
			},
			Confirm: func(_ CancelBookingForm, target string) string {
				return fmt.Sprintf("Cancel %s? This cannot be undone.", target)
			},
			Submit: func(ctx context.Context, f CancelBookingForm) error {
				_, err := b.Bookings.Cancel(ctx, f.BookingID, f.Reason)
				return err
			},
			SuccessMessage: "Booking cancelled",
			FailureMessage: "Failed to cancel booking",
		}),

		ActionCreateServiceRecord: build(action.Definition[ServiceForm]{
			Name: ActionCreateServiceRecord, Vertical: string(Maintenance), Title: "create service record",
			Defaults: func() ServiceForm { return ServiceForm{ServiceDate: parse.Today(), Status: model.ServiceScheduled} },
			Messages: serviceMessages,
			Check: func(f ServiceForm) map[string]string {
				if f.Status != "" && !memberOf(f.Status, model.ServiceStatuses) {
					return map[string]string{"status": "Unknown service status"}
				}
				return nil
			},
			Submit: func(ctx context.Context, f ServiceForm) error {
				_, err := b.Maintenance.Create(ctx, backend.ServiceInput{
					VehicleID:       f.VehicleID,
					ServiceType:     f.ServiceType,
					ServiceDate:     parse.NormalizeDate(f.ServiceDate),
					NextServiceDate: parse.NormalizeDate(f.NextServiceDate),
					ServiceCost:     float64(f.ServiceCost.Round()),
					Status:          string(f.Status),
					PerformedBy:     f.PerformedBy,
					Notes:           f.Notes,
				})
				return err
			},
			SuccessMessage: "Service record created",
			FailureMessage: "Failed to create service record",
		}),

		ActionUpdateServiceStatus: build(action.Definition[ServiceStatusForm]{
			Name: ActionUpdateServiceStatus, Vertical: string(Maintenance), Title: "update service status",
			Messages: map[string]string{"status": "Status is required"},
			ReadOnly: []string{"service_id"},
			Load: func(ctx context.Context, id int64) (ServiceStatusForm, string, error) {
				r, err := loadEntity(ctx, id, b.Maintenance.Get, serviceID)
				if err != nil {
					return ServiceStatusForm{}, "", err
				}
				return ServiceStatusForm{ServiceID: r.ServiceID, Status: r.Status}, r.Label(), nil
			},
			Check: func(f ServiceStatusForm) map[string]string {
				if f.Status != "" && !memberOf(f.Status, model.ServiceStatuses) {
					return map[string]string{"status": "Unknown service status"}
				}
				return nil
			},
			Submit: func(ctx context.Context, f ServiceStatusForm) error {
				_, err := b.Maintenance.UpdateStatus(ctx, f.ServiceID, f.Status)
				return err
			},
			SuccessMessage: "Service status updated",
			FailureMessage: "Failed to update service status",
		}),

		ActionCreateCarModel: build(action.Definition[CarModelForm]{
			Name: ActionCreateCarModel, Vertical: string(CarModels), Title: "create car model",
			Defaults: func() CarModelForm { return CarModelForm{IsActive: true, StandardFeatures: []string{}} },
			Messages: carModelMessages,
			Submit: func(ctx context.Context, f CarModelForm) error {
				_, err := b.CarModels.Create(ctx, backend.CarModelInput{
					Make:              f.Make,
					Model:             f.Model,
					Year:              f.Year,
					VehicleType:       f.VehicleType,
					FuelType:          f.FuelType,
					Transmission:      f.Transmission,
					SeatingCapacity:   f.SeatingCapacity,
					Doors:             f.Doors,
					StandardDailyRate: float64(f.StandardDailyRate.Round()),
					StandardFeatures:  parse.EncodeFeatures(f.StandardFeatures),
					IsActive:          f.IsActive,
				})
				return err
			},
			SuccessMessage: "Car model created",
			FailureMessage: "Failed to create car model",
		}),

		ActionUpdateDailyRate: build(action.Definition[DailyRateForm]{
			Name: ActionUpdateDailyRate, Vertical: string(CarModels), Title: "update daily rate",
			Messages: map[string]string{"standard_daily_rate": "Daily rate must be a positive number"},
			ReadOnly: []string{"model_id"},
			Load: func(ctx context.Context, id int64) (DailyRateForm, string, error) {
				c, err := loadCarModel(ctx, id)
				if err != nil {
					return DailyRateForm{}, "", err
				}
				return DailyRateForm{ModelID: c.ModelID, StandardDailyRate: c.StandardDailyRate}, c.Label(), nil
			},
			Submit: func(ctx context.Context, f DailyRateForm) error {
				_, err := b.CarModels.UpdateDailyRate(ctx, f.ModelID, float64(f.StandardDailyRate.Round()))
				return err
			},
			SuccessMessage: "Daily rate updated",
			FailureMessage: "Failed to update daily rate",
		}),

		ActionSetCarModelActive: build(action.Definition[CarModelActiveForm]{
			Name: ActionSetCarModelActive, Vertical: string(CarModels), Title: "change car model availability",
			ReadOnly: []string{"model_id"},
			Load: func(ctx context.Context, id int64) (CarModelActiveForm, string, error) {
				c, err := loadCarModel(ctx, id)
				if err != nil {
					return CarModelActiveForm{}, "", err
				}
				return CarModelActiveForm{ModelID: c.ModelID, IsActive: c.IsActive}, c.Label(), nil
			},
			Submit: func(ctx context.Context, f CarModelActiveForm) error {
				_, err := b.CarModels.SetActive(ctx, f.ModelID, f.IsActive)
				return err
			},
			SuccessMessage: "Car model availability updated",
			FailureMessage: "Failed to update car model availability",
		}),

		ActionDeleteCarModel: build(action.Definition[CarModelRefForm]{
			Name: ActionDeleteCarModel, Vertical: string(CarModels), Title: "delete car model",
			ReadOnly: []string{"model_id"},
			Load: func(ctx context.Context, id int64) (CarModelRefForm, string, error) {
				c, err := loadCarModel(ctx, id)
				if err != nil {
					return CarModelRefForm{}, "", err
				}
				return CarModelRefForm{ModelID: c.ModelID}, c.Label(), nil
			},
			Confirm: func(_ CarModelRefForm, target string) string {
				return fmt.Sprintf("Delete car model %s? This cannot be undone.", target)
			},
			Submit: func(ctx context.Context, f CarModelRefForm) error {
				return b.CarModels.Delete(ctx, f.ModelID)
			},
			SuccessMessage: "Car model deleted",
			FailureMessage: "Failed to delete car model",
		}),

		ActionUpdatePaymentStatus: build(action.Definition[PaymentStatusForm]{
			Name: ActionUpdatePaymentStatus, Vertical: string(Payments), Title: "update payment status",
			Messages: map[string]string{"payment_status": "Status is required"},
			ReadOnly: []string{"payment_id"},
			Load: func(ctx context.Context, id int64) (PaymentStatusForm, string, error) {
				p, err := loadPayment(ctx, id)
				if err != nil {
					return PaymentStatusForm{}, "", err
				}
				return PaymentStatusForm{PaymentID: p.PaymentID, PaymentStatus: p.PaymentStatus}, p.Label(), nil
			},
			Check: func(f PaymentStatusForm) map[string]string {
				if f.PaymentStatus != "" && !memberOf(f.PaymentStatus, model.PaymentStatuses) {
					return map[string]string{"payment_status": "Unknown payment status"}
				}
				return nil
			},
			Submit: func(ctx context.Context, f PaymentStatusForm) error {
				_, err := b.Payments.UpdateStatus(ctx, f.PaymentID, f.PaymentStatus)
				return err
			},
			SuccessMessage: "Payment status updated",
			FailureMessage: "Failed to update payment status",
		}),

		ActionRefundPayment: build(action.Definition[RefundForm]{
			Name: ActionRefundPayment, Vertical: string(Payments), Title: "refund payment",
			Messages: map[string]string{"refund_amount": "Refund amount must be a positive number"},
			ReadOnly: []string{"payment_id", "refundable"},
			Load: func(ctx context.Context, id int64) (RefundForm, string, error) {
				p, err := loadPayment(ctx, id)
				if err != nil {
					return RefundForm{}, "", err
				}
				return RefundForm{PaymentID: p.PaymentID, Refundable: p.Refundable()}, p.Label(), nil
			},
			Check: func(f RefundForm) map[string]string {
				if f.RefundAmount.Round() > f.Refundable {
					return map[string]string{"refund_amount": fmt.Sprintf("Refund cannot exceed %s", f.Refundable)}
				}
				return nil
			},
			Confirm: func(f RefundForm, target string) string {
				return fmt.Sprintf("Refund %s on %s?", f.RefundAmount.Round(), target)
			},
			Submit: func(ctx context.Context, f RefundForm) error {
				_, err := b.Payments.Refund(ctx, f.PaymentID, float64(f.RefundAmount.Round()))
				return err
			},
			SuccessMessage: "Refund issued",
			FailureMessage: "Failed to issue refund",
		}),
	}
}
