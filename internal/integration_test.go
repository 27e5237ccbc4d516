package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/action"
	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/db"
	"rental-admin-backend/internal/listctl"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/notification"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
	"rental-admin-backend/internal/sandbox"
	"rental-admin-backend/internal/store"
)

type seeder func(context.Context, *store.Rentals) error

func noSeed(context.Context, *store.Rentals) error { return nil }

// newStack runs the dashboard against a sandbox backend filled by seed, or by
// the sandbox demo data when no seeder is given.
func newStack(t *testing.T, name string, workflow config.WorkflowConfig, seed ...seeder) (*dashboard.Dashboard, *backend.Backend) {
	t.Helper()
	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	}, store.Models()...)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	rentals := store.NewRentals(gormDB)
	fill := seeder(sandbox.Seed)
	if len(seed) > 0 {
		fill = seed[0]
	}
	require.NoError(t, fill(context.Background(), rentals))

	srv := sandbox.New(rentals, sandbox.Options{AllowBackwardDamage: workflow.AllowBackwardDamageTransitions})
	server := httptest.NewServer(sandbox.NewRouter(srv))
	t.Cleanup(server.Close)

	cfg := &config.Config{Workflow: workflow}
	cfg.ApplyDefaults()
	rc := restclient.NewWithHTTPClient(server.URL+"/api", nil, server.Client())
	b := backend.New(rc, querycache.New(time.Minute, time.Minute))
	d := dashboard.New(b, cfg, nil)
	t.Cleanup(func() {
		d.Sessions.Close(context.Background())
		d.Overviews.Close()
	})
	return d, b
}

func edit(t *testing.T, h action.Handle, fields string) {
	t.Helper()
	require.NoError(t, h.Edit(json.RawMessage(fields)))
}

func TestStaffListAndTermination(t *testing.T) {
	d, _ := newStack(t, "staff_flow", config.WorkflowConfig{})
	ctx := context.Background()
	s := d.Sessions.Create()

	l, err := s.List(dashboard.Staff)
	require.NoError(t, err)
	v := l.Render(ctx).(listctl.View[dashboard.StaffRow])
	require.Equal(t, listctl.Ready, v.State)
	assert.Equal(t, 4, v.TotalItems)

	require.NoError(t, l.SetFilter(ctx, backend.StaffFilterStatus, "terminated"))
	v = l.Render(ctx).(listctl.View[dashboard.StaffRow])
	require.Len(t, v.Items, 1)
	assert.Equal(t, "EMP-004", v.Items[0].EmployeeID)
	assert.False(t, v.Items[0].Active)

	l.SetSearch(ctx, "nobody-matches-this")
	v = l.Render(ctx).(listctl.View[dashboard.StaffRow])
	assert.Empty(t, v.Items)
	assert.Equal(t, listctl.NoMatches, v.Empty)

	l.ClearFilters(ctx)
	assert.Equal(t, 3, d.Overviews.Render(ctx).Staff.Data.Active)

	h, err := s.Action(dashboard.ActionTerminateStaff)
	require.NoError(t, err)
	require.NoError(t, h.OpenFor(ctx, 1))
	edit(t, h, `{"termination_date":"2024-06-30"}`)
	outcome, err := h.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, action.Succeeded, outcome)

	overview := d.Overviews.Render(ctx)
	assert.Equal(t, 2, overview.Staff.Data.Active)
	assert.Equal(t, 2, overview.Staff.Data.Terminated)

	row, err := d.Staff(ctx, 1)
	require.NoError(t, err)
	assert.False(t, row.Active)

	notices := s.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, notification.KindSuccess, notices[len(notices)-1].Kind)
	assert.Contains(t, s.Completed(), dashboard.ActionTerminateStaff)
}

func TestDamageWorkflowIsForwardOnly(t *testing.T) {
	d, b := newStack(t, "damage_flow", config.WorkflowConfig{})
	ctx := context.Background()
	s := d.Sessions.Create()

	h, err := s.Action(dashboard.ActionUpdateDamageStatus)
	require.NoError(t, err)
	require.NoError(t, h.OpenFor(ctx, 2))

	edit(t, h, `{"status":"Reported"}`)
	_, err = h.Submit(ctx)
	var verr *action.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status")

	edit(t, h, `{"status":"Closed"}`)
	outcome, err := h.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, action.Succeeded, outcome)

	r, err := b.Damage.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.DamageClosed, r.Status)
	require.NotNil(t, r.ResolvedDate)

	summary := d.Overviews.Render(ctx).Damage
	require.Equal(t, listctl.Ready, summary.State)
	var closed int
	for _, row := range summary.Data.ByStatus {
		if row.Status == model.DamageClosed {
			closed = row.Count
		}
	}
	assert.Equal(t, 2, closed)
}

func TestBookingTotalsAreDerived(t *testing.T) {
	d, _ := newStack(t, "booking_flow", config.WorkflowConfig{})
	ctx := context.Background()
	s := d.Sessions.Create()

	h, err := s.Action(dashboard.ActionUpdateBookingTotals)
	require.NoError(t, err)
	require.NoError(t, h.OpenFor(ctx, 3))

	assert.ErrorIs(t, h.Edit(json.RawMessage(`{"final_total":1}`)), action.ErrReadOnlyField)

	edit(t, h, `{"discount_amount":500}`)
	_, err = h.Submit(ctx)
	var verr *action.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "discount_amount")

	edit(t, h, `{"discount_amount":20,"extra_charges":5.25}`)
	st := h.Snapshot().(action.State[dashboard.BookingTotalsForm])
	assert.Equal(t, model.Money(175.25), st.Form.FinalTotal)

	_, err = h.Submit(ctx)
	require.NoError(t, err)

	row, err := d.Booking(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.Money(175.25), row.FinalTotal)
	assert.Equal(t, model.Money(175.25), row.DisplayTotal)
	assert.False(t, row.TotalsDiverge)
}

func TestRefundNeedsConfirmation(t *testing.T) {
	d, b := newStack(t, "refund_flow", config.WorkflowConfig{})
	ctx := context.Background()
	s := d.Sessions.Create()

	h, err := s.Action(dashboard.ActionRefundPayment)
	require.NoError(t, err)
	require.NoError(t, h.OpenFor(ctx, 1))

	edit(t, h, `{"refund_amount":1000}`)
	_, err = h.Submit(ctx)
	var verr *action.ValidationError
	require.ErrorAs(t, err, &verr)

	edit(t, h, `{"refund_amount":50}`)
	outcome, err := h.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, action.NeedsConfirmation, outcome)

	p, err := b.Payments.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, p.PaymentStatus)

	outcome, err = h.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, action.Succeeded, outcome)

	p, err = b.Payments.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPartiallyRefunded, p.PaymentStatus)
	assert.Equal(t, model.Money(50), p.RefundAmount)
}

func TestCancelledBookingCannotBeCancelledAgain(t *testing.T) {
	d, _ := newStack(t, "cancel_flow", config.WorkflowConfig{})
	ctx := context.Background()
	s := d.Sessions.Create()

	h, err := s.Action(dashboard.ActionCancelBooking)
	require.NoError(t, err)
	require.NoError(t, h.OpenFor(ctx, 5))
	edit(t, h, `{"reason":"Duplicate"}`)
	_, err = h.Submit(ctx)
	var verr *action.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "booking_status")

	require.NoError(t, h.Close())
	require.NoError(t, h.OpenFor(ctx, 3))
	edit(t, h, `{"reason":"Customer request"}`)
	outcome, err := h.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, action.NeedsConfirmation, outcome)
	_, err = h.Confirm(ctx)
	require.NoError(t, err)

	row, err := d.Booking(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, row.BookingStatus)
	assert.False(t, row.Cancellable)
}

func TestCreateTerminateAndFilterStaff(t *testing.T) {
	d, _ := newStack(t, "create_flow", config.WorkflowConfig{}, noSeed)
	ctx := context.Background()
	s := d.Sessions.Create()

	l, err := s.List(dashboard.Staff)
	require.NoError(t, err)
	v := l.Render(ctx).(listctl.View[dashboard.StaffRow])
	assert.Equal(t, listctl.NoRecords, v.Empty)

	create, err := s.Action(dashboard.ActionCreateStaff)
	require.NoError(t, err)
	require.NoError(t, create.OpenFor(ctx, 0))
	edit(t, create, `{"employee_id":"EMP001","first_name":"Rosa","last_name":"Diaz","job_title":"Rental Agent",`+
		`"department":"Sales","branch_id":1,"salary":3000,"employment_type":"full_time","hire_date":"2023-02-01"}`)
	_, err = create.Submit(ctx)
	require.NoError(t, err)

	v = l.Render(ctx).(listctl.View[dashboard.StaffRow])
	require.Len(t, v.Items, 1)
	assert.Equal(t, "EMP001", v.Items[0].EmployeeID)
	assert.True(t, v.Items[0].Active)
	id := v.Items[0].StaffID

	terminate, err := s.Action(dashboard.ActionTerminateStaff)
	require.NoError(t, err)
	require.NoError(t, terminate.OpenFor(ctx, id))
	edit(t, terminate, `{"termination_date":"2024-01-01"}`)
	_, err = terminate.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, l.SetFilter(ctx, backend.StaffFilterStatus, "terminated"))
	v = l.Render(ctx).(listctl.View[dashboard.StaffRow])
	require.Len(t, v.Items, 1)
	assert.Equal(t, id, v.Items[0].StaffID)

	require.NoError(t, l.SetFilter(ctx, backend.StaffFilterStatus, "active"))
	v = l.Render(ctx).(listctl.View[dashboard.StaffRow])
	assert.Empty(t, v.Items)
	assert.Equal(t, listctl.NoMatches, v.Empty)
}

// seedDamage stores twelve incidents, one per day from 2024-01-01, on
// vehicles 4 and 5 alternately, and twelve active car models.
func seedDamage(ctx context.Context, r *store.Rentals) error {
	for i := 0; i < 12; i++ {
		d := &model.DamageReport{
			BookingID:           int64(100 + i),
			VehicleID:           int64(4 + i%2),
			CustomerID:          int64(200 + i),
			IncidentDescription: fmt.Sprintf("Incident %d", i),
			Status:              model.DamageReported,
			DateRecorded:        fmt.Sprintf("2024-01-%02d", i+1),
		}
		if err := store.Create(ctx, r, d); err != nil {
			return err
		}
		c := &model.CarModel{
			Make: "Make", Model: fmt.Sprintf("Model %d", i), Year: 2024, VehicleType: "Sedan",
			FuelType: "Petrol", Transmission: "Manual", SeatingCapacity: 5, Doors: 4,
			StandardDailyRate: 40, StandardFeatures: "[]", IsActive: true,
		}
		if err := store.Create(ctx, r, c); err != nil {
			return err
		}
	}
	return nil
}

func TestDamageListPagesBeyondFirstPage(t *testing.T) {
	d, _ := newStack(t, "damage_pages", config.WorkflowConfig{}, seedDamage)
	ctx := context.Background()
	s := d.Sessions.Create()

	l, err := s.List(dashboard.Damage)
	require.NoError(t, err)
	v := l.Render(ctx).(listctl.View[dashboard.DamageRow])
	require.Equal(t, listctl.Ready, v.State)
	assert.Len(t, v.Items, 10)
	assert.Equal(t, 12, v.TotalItems)
	assert.Equal(t, 2, v.TotalPages)
	assert.True(t, v.CanNext)

	require.True(t, l.NextPage(ctx))
	v = l.Render(ctx).(listctl.View[dashboard.DamageRow])
	assert.Len(t, v.Items, 2)
	assert.False(t, v.CanNext)

	models, err := s.List(dashboard.CarModels)
	require.NoError(t, err)
	mv := models.Render(ctx).(listctl.View[dashboard.CarModelRow])
	require.Equal(t, listctl.Ready, mv.State)
	assert.Len(t, mv.Items, 10)
	assert.Equal(t, 12, mv.TotalItems)
	assert.Equal(t, 2, mv.TotalPages)
}

func TestDamageDateRangeKeepsOtherFilters(t *testing.T) {
	d, _ := newStack(t, "damage_range", config.WorkflowConfig{}, seedDamage)
	ctx := context.Background()
	s := d.Sessions.Create()

	l, err := s.List(dashboard.Damage)
	require.NoError(t, err)
	require.NoError(t, l.SetFilters(ctx, map[string]string{
		backend.DamageFilterStartDate: "2024-01-01",
		backend.DamageFilterEndDate:   "2024-01-08",
		backend.DamageFilterVehicleID: "4",
	}))
	v := l.Render(ctx).(listctl.View[dashboard.DamageRow])
	require.Equal(t, listctl.Ready, v.State)
	require.Len(t, v.Items, 4)
	for _, row := range v.Items {
		assert.Equal(t, int64(4), row.VehicleID)
		assert.LessOrEqual(t, row.DateRecorded, "2024-01-08")
	}

	l.SetSearch(ctx, "Incident 6")
	v = l.Render(ctx).(listctl.View[dashboard.DamageRow])
	require.Len(t, v.Items, 1)
	assert.Equal(t, "2024-01-07", v.Items[0].DateRecorded)

	require.NoError(t, l.SetFilter(ctx, backend.DamageFilterStatus, string(model.DamageClosed)))
	v = l.Render(ctx).(listctl.View[dashboard.DamageRow])
	assert.Empty(t, v.Items)
	assert.Equal(t, listctl.NoMatches, v.Empty)
}
