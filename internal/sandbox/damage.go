package sandbox

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/store"
)

// listDamage answers every matching incident as {success, data}, without
// pagination metadata.
func (s *Server) listDamage(c *gin.Context) {
	q := listQuery(c, "incident_description", "incident_id", "booking_id")
	vehicleID, ok := intFilter(c, "vehicle_id")
	if !ok {
		return
	}
	q.Equal["vehicle_id"] = vehicleID
	q.Equal["status"] = c.Query("status")
	q.Where = append(q.Where, store.DateRangeCond("date_recorded", c.Query("start_date"), c.Query("end_date"))...)
	q.Order = "date_recorded DESC, incident_id DESC"
	q.All = true

	items, _, err := store.List[model.DamageReport](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "damage reports")
		return
	}
	wrapped(c, http.StatusOK, items, "")
}

// damageByDateRange answers a bare array of every incident in the range.
func (s *Server) damageByDateRange(c *gin.Context) {
	var req struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	start, err := parse.Date(req.StartDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid start date")
		return
	}
	end, err := parse.Date(req.EndDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid end date")
		return
	}
	if end.Before(start) {
		fail(c, http.StatusBadRequest, "End date must not be before start date")
		return
	}

	items := []model.DamageReport{}
	err = s.rentals.DB().WithContext(c.Request.Context()).
		Where("date_recorded >= ? AND date_recorded <= ?", start.Format(parse.DateLayout), end.Format(parse.DateLayout)).
		Order("date_recorded DESC, incident_id DESC").
		Find(&items).Error
	if err != nil {
		failErr(c, err, "damage reports")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) damageSummary(c *gin.Context) {
	summary, err := s.rentals.DamageSummary(c.Request.Context())
	if err != nil {
		failErr(c, err, "damage summary")
		return
	}
	wrapped(c, http.StatusOK, summary, "")
}

func (s *Server) getDamage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := store.Get[model.DamageReport](c.Request.Context(), s.rentals, id)
	if err != nil {
		failErr(c, err, "Damage report")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) createDamage(c *gin.Context) {
	var req struct {
		BookingID           int64              `json:"booking_id" binding:"required,gt=0"`
		VehicleID           int64              `json:"vehicle_id" binding:"required,gt=0"`
		CustomerID          int64              `json:"customer_id" binding:"required,gt=0"`
		IncidentDescription string             `json:"incident_description" binding:"required"`
		DamageCost          model.Money        `json:"damage_cost" binding:"gte=0"`
		DateRecorded        string             `json:"date_recorded"`
		Status              model.DamageStatus `json:"status"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Status == "" {
		req.Status = model.DamageReported
	}
	if req.Status.Rank() < 0 {
		fail(c, http.StatusBadRequest, "Invalid damage status")
		return
	}
	recorded := s.opts.Today()
	if req.DateRecorded != "" {
		d, err := parse.Date(req.DateRecorded)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid date recorded")
			return
		}
		recorded = d.Format(parse.DateLayout)
	}

	rec := model.DamageReport{
		BookingID:           req.BookingID,
		VehicleID:           req.VehicleID,
		CustomerID:          req.CustomerID,
		IncidentDescription: req.IncidentDescription,
		DamageCost:          req.DamageCost.Round(),
		Status:              req.Status,
		DateRecorded:        recorded,
	}
	if req.Status == model.DamageClosed {
		today := s.opts.Today()
		rec.ResolvedDate = &today
	}
	if err := store.Create(c.Request.Context(), s.rentals, &rec); err != nil {
		failErr(c, err, "damage report")
		return
	}
	wrapped(c, http.StatusCreated, rec, "Damage report created")
}

func (s *Server) updateDamageStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Status       model.DamageStatus `json:"status" binding:"required"`
		ResolvedDate *string            `json:"resolved_date"`
	}
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	current, err := store.Get[model.DamageReport](ctx, s.rentals, id)
	if err != nil {
		failErr(c, err, "Damage report")
		return
	}
	t, err := model.TransitionDamage(current.Status, req.Status, req.ResolvedDate, s.opts.Today(), s.opts.AllowBackwardDamage)
	switch {
	case errors.Is(err, model.ErrUnknownStatus):
		fail(c, http.StatusBadRequest, "Invalid damage status")
		return
	case errors.Is(err, model.ErrBackwardTransition):
		fail(c, http.StatusConflict, "Damage report cannot move from "+string(current.Status)+" to "+string(req.Status))
		return
	case err != nil:
		failErr(c, err, "damage report")
		return
	}

	rec, err := store.Update[model.DamageReport](ctx, s.rentals, id, map[string]any{
		"status":        t.Status,
		"resolved_date": t.ResolvedDate,
	})
	if err != nil {
		failErr(c, err, "Damage report")
		return
	}
	wrapped(c, http.StatusOK, rec, "Damage status updated")
}

func (s *Server) updateDamageCost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		DamageCost *model.Money `json:"damage_cost" binding:"required,gte=0"`
	}
	if !bindJSON(c, &req) {
		return
	}
	rec, err := store.Update[model.DamageReport](c.Request.Context(), s.rentals, id, map[string]any{"damage_cost": req.DamageCost.Round()})
	if err != nil {
		failErr(c, err, "Damage report")
		return
	}
	wrapped(c, http.StatusOK, rec, "Damage cost updated")
}

func (s *Server) deleteDamage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := store.Delete[model.DamageReport](c.Request.Context(), s.rentals, id); err != nil {
		failErr(c, err, "Damage report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Damage report deleted"})
}
