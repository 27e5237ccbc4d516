package sandbox

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/store"
)

func validServiceStatus(s model.ServiceStatus) bool {
	for _, v := range model.ServiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s *Server) listServices(c *gin.Context) {
	q := listQuery(c, "service_type", "performed_by", "notes")
	vehicleID, ok := intFilter(c, "vehicle_id")
	if !ok {
		return
	}
	q.Equal["vehicle_id"] = vehicleID
	q.Equal["status"] = c.Query("status")
	q.Equal["service_type"] = c.Query("service_type")
	q.Order = "service_date DESC, service_id DESC"

	items, total, err := store.List[model.ServiceRecord](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "service records")
		return
	}
	paginated(c, items, total, q)
}

func (s *Server) getService(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := store.Get[model.ServiceRecord](c.Request.Context(), s.rentals, id)
	if err != nil {
		failErr(c, err, "Service record")
		return
	}
	wrapped(c, http.StatusOK, rec, "")
}

func (s *Server) createService(c *gin.Context) {
	var req struct {
		VehicleID       int64               `json:"vehicle_id" binding:"required,gt=0"`
		ServiceType     string              `json:"service_type" binding:"required"`
		ServiceDate     string              `json:"service_date" binding:"required"`
		NextServiceDate string              `json:"next_service_date"`
		ServiceCost     model.Money         `json:"service_cost" binding:"gte=0"`
		Status          model.ServiceStatus `json:"status"`
		PerformedBy     string              `json:"performed_by"`
		Notes           string              `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Status == "" {
		req.Status = model.ServiceScheduled
	}
	if !validServiceStatus(req.Status) {
		fail(c, http.StatusBadRequest, "Invalid service status")
		return
	}
	date, err := parse.Date(req.ServiceDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid service date")
		return
	}

	rec := model.ServiceRecord{
		VehicleID:   req.VehicleID,
		ServiceType: req.ServiceType,
		ServiceDate: date.Format(parse.DateLayout),
		ServiceCost: req.ServiceCost.Round(),
		Status:      req.Status,
		PerformedBy: req.PerformedBy,
		Notes:       req.Notes,
	}
	if req.NextServiceDate != "" {
		next, err := parse.Date(req.NextServiceDate)
		if err != nil || next.Before(date) {
			fail(c, http.StatusBadRequest, "Next service date must be on or after the service date")
			return
		}
		v := next.Format(parse.DateLayout)
		rec.NextServiceDate = &v
	}
	if err := store.Create(c.Request.Context(), s.rentals, &rec); err != nil {
		failErr(c, err, "service record")
		return
	}
	wrapped(c, http.StatusCreated, rec, "Service record created")
}

func (s *Server) updateServiceStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Status model.ServiceStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if !validServiceStatus(req.Status) {
		fail(c, http.StatusBadRequest, "Invalid service status")
		return
	}
	rec, err := store.Update[model.ServiceRecord](c.Request.Context(), s.rentals, id, map[string]any{"status": req.Status})
	if err != nil {
		failErr(c, err, "Service record")
		return
	}
	wrapped(c, http.StatusOK, rec, "Service status updated")
}

func (s *Server) deleteService(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := store.Delete[model.ServiceRecord](c.Request.Context(), s.rentals, id); err != nil {
		failErr(c, err, "Service record")
		return
	}
	c.Status(http.StatusNoContent)
}
