package store

import (
	"context"
	"fmt"

	"rental-admin-backend/internal/model"
)

// StaffStatusCond filters staff by derived status; other values match all.
func StaffStatusCond(status string) (Cond, bool) {
	switch model.StaffStatus(status) {
	case model.StaffActive:
		return Cond{SQL: "(termination_date IS NULL OR termination_date = '')"}, true
	case model.StaffTerminated:
		return Cond{SQL: "(termination_date IS NOT NULL AND termination_date <> '')"}, true
	}
	return Cond{}, false
}

// DateRangeCond bounds a YYYY-MM-DD column; empty bounds are open.
func DateRangeCond(column, from, to string) []Cond {
	var conds []Cond
	if from != "" {
		conds = append(conds, Cond{SQL: column + " >= ?", Args: []any{from}})
	}
	if to != "" {
		conds = append(conds, Cond{SQL: column + " <= ?", Args: []any{to}})
	}
	return conds
}

// StaffOverview counts staff by status and department.
func (r *Rentals) StaffOverview(ctx context.Context) (model.StaffOverview, error) {
	out := model.StaffOverview{ByDepartment: map[string]int{}}
	db := r.db.WithContext(ctx).Model(&model.StaffRecord{})

	var total, active int64
	if err := db.Count(&total).Error; err != nil {
		return out, fmt.Errorf("failed to count staff: %w", err)
	}
	activeCond, _ := StaffStatusCond(string(model.StaffActive))
	if err := r.db.WithContext(ctx).Model(&model.StaffRecord{}).Where(activeCond.SQL).Count(&active).Error; err != nil {
		return out, fmt.Errorf("failed to count active staff: %w", err)
	}

	var rows []struct {
		Department string
		Count      int
	}
	if err := r.db.WithContext(ctx).Model(&model.StaffRecord{}).
		Select("department, count(*) AS count").
		Group("department").
		Scan(&rows).Error; err != nil {
		return out, fmt.Errorf("failed to group staff by department: %w", err)
	}
	for _, row := range rows {
		out.ByDepartment[row.Department] = row.Count
	}

	out.Total = int(total)
	out.Active = int(active)
	out.Terminated = int(total - active)
	return out, nil
}

// DamageSummary aggregates incidents per status in workflow order.
func (r *Rentals) DamageSummary(ctx context.Context) (model.DamageSummary, error) {
	out := model.DamageSummary{ByStatus: []model.DamageStatusSummary{}}
	var rows []model.DamageStatusSummary
	if err := r.db.WithContext(ctx).Model(&model.DamageReport{}).
		Select("status, count(*) AS count, COALESCE(SUM(damage_cost), 0) AS total_cost").
		Group("status").
		Scan(&rows).Error; err != nil {
		return out, fmt.Errorf("failed to summarize damage reports: %w", err)
	}

	byStatus := make(map[model.DamageStatus]model.DamageStatusSummary, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
		out.TotalIncidents += row.Count
		out.TotalCost += row.TotalCost
	}
	for _, s := range model.DamageStatuses {
		row, ok := byStatus[s]
		if !ok {
			row = model.DamageStatusSummary{Status: s}
		}
		out.ByStatus = append(out.ByStatus, row)
	}
	out.TotalCost = out.TotalCost.Round()
	return out, nil
}

// PaymentSummary aggregates payments per status.
func (r *Rentals) PaymentSummary(ctx context.Context) (model.PaymentSummary, error) {
	out := model.PaymentSummary{ByStatus: []model.PaymentStatusSummary{}}
	var rows []struct {
		Status   model.PaymentStatus
		Count    int
		Amount   model.Money
		Refunded model.Money
	}
	if err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("payment_status AS status, count(*) AS count, COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(refund_amount), 0) AS refunded").
		Group("payment_status").
		Scan(&rows).Error; err != nil {
		return out, fmt.Errorf("failed to summarize payments: %w", err)
	}

	byStatus := make(map[model.PaymentStatus]model.PaymentStatusSummary, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = model.PaymentStatusSummary{Status: row.Status, Count: row.Count, Amount: row.Amount.Round()}
		out.TotalAmount += row.Amount
		out.RefundedAmount += row.Refunded
	}
	for _, s := range model.PaymentStatuses {
		row, ok := byStatus[s]
		if !ok {
			row = model.PaymentStatusSummary{Status: s}
		}
		out.ByStatus = append(out.ByStatus, row)
	}
	out.TotalAmount = out.TotalAmount.Round()
	out.RefundedAmount = out.RefundedAmount.Round()
	return out, nil
}
