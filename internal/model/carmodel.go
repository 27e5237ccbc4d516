package model

import (
	"fmt"

	"rental-admin-backend/internal/parse"
)

// CarModel is a catalog entry vehicles are assigned to.
type CarModel struct {
	ModelID           int64  `json:"model_id" gorm:"primaryKey"`
	Make              string `json:"make" gorm:"size:64;index"`
	Model             string `json:"model" gorm:"size:64"`
	Year              int    `json:"year"`
	VehicleType       string `json:"vehicle_type" gorm:"size:32;index"`
	FuelType          string `json:"fuel_type" gorm:"size:32;index"`
	Transmission      string `json:"transmission" gorm:"size:32"`
	SeatingCapacity   int    `json:"seating_capacity"`
	Doors             int    `json:"doors"`
	StandardDailyRate Money  `json:"standard_daily_rate"`
	// StandardFeatures is a JSON-encoded string array, kept as sent.
	StandardFeatures string `json:"standard_features"`
	IsActive         bool   `json:"is_active" gorm:"index"`
}

// Features decodes StandardFeatures; malformed values yield nil.
func (c CarModel) Features() []string {
	return parse.Features(c.StandardFeatures)
}

// Assignable reports whether new vehicles may be assigned to the model.
func (c CarModel) Assignable() bool {
	return c.IsActive
}

// Label is the human readable identifier used in confirmations.
func (c CarModel) Label() string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}
