package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-admin-backend/internal/model"
)

func newRentals(t *testing.T) (*Rentals, *gorm.DB) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	r := NewRentals(db)
	r.Actor = 1
	return r, db
}

func strPtr(s string) *string { return &s }

func seedStaff(t *testing.T, r *Rentals) []model.StaffRecord {
	t.Helper()
	staff := []model.StaffRecord{
		{EmployeeID: "E-100", FirstName: "Ada", LastName: "Moss", JobTitle: "Agent", Department: "Sales", BranchID: 1, EmploymentType: "full_time", HireDate: "2023-01-10"},
		{EmployeeID: "E-101", FirstName: "Ben", LastName: "Hart", JobTitle: "Mechanic", Department: "Fleet", BranchID: 2, EmploymentType: "part_time", HireDate: "2023-03-02"},
		{EmployeeID: "E-102", FirstName: "Cleo", LastName: "Ward", JobTitle: "Agent", Department: "Sales", BranchID: 1, EmploymentType: "full_time", HireDate: "2022-11-20", TerminationDate: strPtr("2024-02-01")},
	}
	for i := range staff {
		require.NoError(t, Create(context.Background(), r, &staff[i]))
	}
	return staff
}

func TestRentals_CreateAppendsActivityLog(t *testing.T) {
	r, db := newRentals(t)
	staff := seedStaff(t, r)
	require.NotZero(t, staff[0].StaffID)

	var logs []model.ActivityLogEntry
	require.NoError(t, db.Order("log_id").Find(&logs).Error)
	require.Len(t, logs, 3)
	assert.Equal(t, model.ActionCreate, logs[0].Action)
	assert.Equal(t, "staff_records", logs[0].Table)
	assert.Equal(t, staff[0].StaffID, logs[0].RecordID)
	assert.Equal(t, int64(1), logs[0].StaffID)
	assert.Empty(t, logs[0].OldValues)
	assert.Contains(t, logs[0].NewValues, `"employee_id":"E-100"`)
}

func TestRentals_ListFiltersAndPaginates(t *testing.T) {
	r, _ := newRentals(t)
	seedStaff(t, r)
	ctx := context.Background()

	testCases := []struct {
		name      string
		query     ListQuery
		wantTotal int64
		wantIDs   []string
	}{
		{
			name:      "search is case insensitive",
			query:     ListQuery{Search: "ADA", SearchColumns: []string{"first_name", "last_name", "employee_id"}},
			wantTotal: 1,
			wantIDs:   []string{"E-100"},
		},
		{
			name:      "equality filters ignore empty values",
			query:     ListQuery{Equal: map[string]any{"department": "Sales", "job_title": "", "branch_id": nil}, Order: "employee_id"},
			wantTotal: 2,
			wantIDs:   []string{"E-100", "E-102"},
		},
		{
			name:      "second page",
			query:     ListQuery{Page: 2, Limit: 2, Order: "employee_id"},
			wantTotal: 3,
			wantIDs:   []string{"E-102"},
		},
		{
			name:      "all ignores page and limit",
			query:     ListQuery{Page: 2, Limit: 1, Order: "employee_id", All: true},
			wantTotal: 3,
			wantIDs:   []string{"E-100", "E-101", "E-102"},
		},
		{
			name: "terminated status",
			query: func() ListQuery {
				cond, ok := StaffStatusCond("terminated")
				require.True(t, ok)
				return ListQuery{Where: []Cond{cond}}
			}(),
			wantTotal: 1,
			wantIDs:   []string{"E-102"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := List[model.StaffRecord](ctx, r, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, total)
			var ids []string
			for _, s := range items {
				ids = append(ids, s.EmployeeID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestRentals_UpdateRecordsBeforeAndAfter(t *testing.T) {
	r, db := newRentals(t)
	staff := seedStaff(t, r)
	ctx := context.Background()

	updated, err := Update[model.StaffRecord](ctx, r, staff[0].StaffID, map[string]any{"branch_id": 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.BranchID)
	assert.Equal(t, "Ada", updated.FirstName)

	var entry model.ActivityLogEntry
	require.NoError(t, db.Where("action = ?", model.ActionUpdate).First(&entry).Error)
	assert.Equal(t, staff[0].StaffID, entry.RecordID)
	assert.Contains(t, entry.OldValues, `"branch_id":1`)
	assert.Contains(t, entry.NewValues, `"branch_id":7`)

	_, err = Update[model.StaffRecord](ctx, r, 9999, map[string]any{"branch_id": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRentals_DeleteAndGet(t *testing.T) {
	r, db := newRentals(t)
	staff := seedStaff(t, r)
	ctx := context.Background()

	got, err := Get[model.StaffRecord](ctx, r, staff[1].StaffID)
	require.NoError(t, err)
	assert.Equal(t, "E-101", got.EmployeeID)

	require.NoError(t, Delete[model.StaffRecord](ctx, r, staff[1].StaffID))
	_, err = Get[model.StaffRecord](ctx, r, staff[1].StaffID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, Delete[model.StaffRecord](ctx, r, staff[1].StaffID), ErrNotFound)

	var entry model.ActivityLogEntry
	require.NoError(t, db.Where("action = ?", model.ActionDelete).First(&entry).Error)
	assert.Equal(t, staff[1].StaffID, entry.RecordID)
	assert.Contains(t, entry.OldValues, `"employee_id":"E-101"`)
	assert.Empty(t, entry.NewValues)
}

func TestRentals_Summaries(t *testing.T) {
	r, _ := newRentals(t)
	seedStaff(t, r)
	ctx := context.Background()

	for _, d := range []model.DamageReport{
		{BookingID: 1, Status: model.DamageReported, DamageCost: 100.5, DateRecorded: "2024-05-01"},
		{BookingID: 2, Status: model.DamageReported, DamageCost: 49.5, DateRecorded: "2024-05-03"},
		{BookingID: 3, Status: model.DamageClosed, DamageCost: 20, DateRecorded: "2024-04-20", ResolvedDate: strPtr("2024-04-28")},
	} {
		require.NoError(t, Create(ctx, r, &d))
	}
	for _, p := range []model.Payment{
		{BookingID: 1, Amount: 200, PaymentStatus: model.PaymentCompleted},
		{BookingID: 2, Amount: 100, RefundAmount: 40, PaymentStatus: model.PaymentPartiallyRefunded},
	} {
		require.NoError(t, Create(ctx, r, &p))
	}

	overview, err := r.StaffOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.Total)
	assert.Equal(t, 2, overview.Active)
	assert.Equal(t, 1, overview.Terminated)
	assert.Equal(t, map[string]int{"Sales": 2, "Fleet": 1}, overview.ByDepartment)

	damage, err := r.DamageSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, damage.TotalIncidents)
	assert.Equal(t, model.Money(170), damage.TotalCost)
	require.Len(t, damage.ByStatus, len(model.DamageStatuses))
	assert.Equal(t, model.DamageStatusSummary{Status: model.DamageReported, Count: 2, TotalCost: 150}, damage.ByStatus[0])
	assert.Equal(t, 0, damage.ByStatus[1].Count)

	payments, err := r.PaymentSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Money(300), payments.TotalAmount)
	assert.Equal(t, model.Money(40), payments.RefundedAmount)
	require.Len(t, payments.ByStatus, len(model.PaymentStatuses))
}

func TestDateRangeCond(t *testing.T) {
	assert.Empty(t, DateRangeCond("pickup_date", "", ""))
	conds := DateRangeCond("pickup_date", "2024-01-01", "2024-01-31")
	require.Len(t, conds, 2)
	assert.Equal(t, "pickup_date >= ?", conds[0].SQL)
	assert.Equal(t, []any{"2024-01-31"}, conds[1].Args)
}
