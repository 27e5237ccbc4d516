package backend

import (
	"context"
	"net/http"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Car model list filter keys.
const (
	CarModelFilterVehicleType = "vehicle_type"
	CarModelFilterFuelType    = "fuel_type"
	CarModelFilterActive      = "is_active"
)

// CarModelClient talks to the car-models endpoints.
type CarModelClient struct {
	base
}

// CarModelInput is the body of the create call.
type CarModelInput struct {
	Make              string  `json:"make"`
	Model             string  `json:"model"`
	Year              int     `json:"year"`
	VehicleType       string  `json:"vehicle_type"`
	FuelType          string  `json:"fuel_type"`
	Transmission      string  `json:"transmission"`
	SeatingCapacity   int     `json:"seating_capacity"`
	Doors             int     `json:"doors"`
	StandardDailyRate float64 `json:"standard_daily_rate"`
	StandardFeatures  string  `json:"standard_features"`
	IsActive          bool    `json:"is_active"`
}

func carModelTags(id int64) []querycache.Tag {
	return []querycache.Tag{querycache.T(TagCarModel), querycache.ID(TagCarModel, idString(id))}
}

// ListRequest describes GET /car-models.
func (c *CarModelClient) ListRequest(q restclient.Query) querycache.Request {
	return listRequest[model.CarModel](c.base, "/car-models", q, querycache.T(TagCarModel))
}

// Active lists the models new vehicles can be assigned to, for dropdowns.
func (c *CarModelClient) Active(ctx context.Context) ([]model.CarModel, error) {
	page, err := querycache.Get[restclient.Page[model.CarModel]](ctx, c.cache,
		c.ListRequest(restclient.Query{CarModelFilterActive: "true"}))
	if err != nil {
		return nil, err
	}
	out := make([]model.CarModel, 0, len(page.Data))
	for _, m := range page.Data {
		if m.Assignable() {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetRequest describes GET /car-models/{id}.
func (c *CarModelClient) GetRequest(id int64) querycache.Request {
	return oneRequest[model.CarModel](c.base, "/car-models/"+idString(id), querycache.ID(TagCarModel, idString(id)))
}

// Get runs GetRequest through the cache.
func (c *CarModelClient) Get(ctx context.Context, id int64) (model.CarModel, error) {
	return querycache.Get[model.CarModel](ctx, c.cache, c.GetRequest(id))
}

// Create adds a catalog entry.
func (c *CarModelClient) Create(ctx context.Context, in CarModelInput) (model.CarModel, error) {
	return mutate[model.CarModel](ctx, c.base, http.MethodPost, "/car-models", in, querycache.T(TagCarModel))
}

// UpdateDailyRate changes the standard daily rate.
func (c *CarModelClient) UpdateDailyRate(ctx context.Context, id int64, rate float64) (model.CarModel, error) {
	return mutate[model.CarModel](ctx, c.base, http.MethodPatch, "/car-models/"+idString(id)+"/daily-rate",
		map[string]float64{"standard_daily_rate": rate}, carModelTags(id)...)
}

// SetActive toggles availability for new vehicle assignment.
func (c *CarModelClient) SetActive(ctx context.Context, id int64, active bool) (model.CarModel, error) {
	return mutate[model.CarModel](ctx, c.base, http.MethodPatch, "/car-models/"+idString(id)+"/active",
		map[string]bool{"is_active": active}, carModelTags(id)...)
}

// Delete removes a catalog entry.
func (c *CarModelClient) Delete(ctx context.Context, id int64) error {
	_, err := mutate[struct{}](ctx, c.base, http.MethodDelete, "/car-models/"+idString(id), nil, carModelTags(id)...)
	return err
}
