package sandbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/store"
)

// listCarModels answers a bare array, filtered but never paginated.
func (s *Server) listCarModels(c *gin.Context) {
	q := listQuery(c, "make", "model", "vehicle_type")
	q.Equal["vehicle_type"] = c.Query("vehicle_type")
	q.Equal["fuel_type"] = c.Query("fuel_type")
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid is_active")
			return
		}
		q.Where = append(q.Where, store.Cond{SQL: "is_active = ?", Args: []any{active}})
	}
	q.All = true
	q.Order = "make, model, year DESC"

	items, _, err := store.List[model.CarModel](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "car models")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getCarModel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := store.Get[model.CarModel](c.Request.Context(), s.rentals, id)
	if err != nil {
		failErr(c, err, "Car model")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) createCarModel(c *gin.Context) {
	var req struct {
		Make              string      `json:"make" binding:"required"`
		Model             string      `json:"model" binding:"required"`
		Year              int         `json:"year" binding:"required,gte=1900,lte=2100"`
		VehicleType       string      `json:"vehicle_type" binding:"required"`
		FuelType          string      `json:"fuel_type" binding:"required"`
		Transmission      string      `json:"transmission"`
		SeatingCapacity   int         `json:"seating_capacity" binding:"gte=0"`
		Doors             int         `json:"doors" binding:"gte=0"`
		StandardDailyRate model.Money `json:"standard_daily_rate" binding:"gt=0"`
		StandardFeatures  string      `json:"standard_features"`
		IsActive          bool        `json:"is_active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	rec := model.CarModel{
		Make:              req.Make,
		Model:             req.Model,
		Year:              req.Year,
		VehicleType:       req.VehicleType,
		FuelType:          req.FuelType,
		Transmission:      req.Transmission,
		SeatingCapacity:   req.SeatingCapacity,
		Doors:             req.Doors,
		StandardDailyRate: req.StandardDailyRate.Round(),
		StandardFeatures:  parse.EncodeFeatures(parse.Features(req.StandardFeatures)),
		IsActive:          req.IsActive,
	}
	if err := store.Create(c.Request.Context(), s.rentals, &rec); err != nil {
		failErr(c, err, "car model")
		return
	}
	wrapped(c, http.StatusCreated, rec, "Car model created")
}

func (s *Server) updateDailyRate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		StandardDailyRate model.Money `json:"standard_daily_rate" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}
	rec, err := store.Update[model.CarModel](c.Request.Context(), s.rentals, id, map[string]any{
		"standard_daily_rate": req.StandardDailyRate.Round(),
	})
	if err != nil {
		failErr(c, err, "Car model")
		return
	}
	wrapped(c, http.StatusOK, rec, "Daily rate updated")
}

func (s *Server) setCarModelActive(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	rec, err := store.Update[model.CarModel](c.Request.Context(), s.rentals, id, map[string]any{"is_active": *req.IsActive})
	if err != nil {
		failErr(c, err, "Car model")
		return
	}
	wrapped(c, http.StatusOK, rec, "Car model availability updated")
}

func (s *Server) deleteCarModel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := store.Delete[model.CarModel](c.Request.Context(), s.rentals, id); err != nil {
		failErr(c, err, "Car model")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Car model deleted"})
}
