package backend

import (
	"context"
	"net/http"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Maintenance list filter keys.
const (
	ServiceFilterStatus      = "status"
	ServiceFilterServiceType = "service_type"
	ServiceFilterVehicleID   = "vehicle_id"
)

// MaintenanceClient talks to the service-records endpoints.
type MaintenanceClient struct {
	base
}

// ServiceInput is the body of the create call.
type ServiceInput struct {
	VehicleID       int64   `json:"vehicle_id"`
	ServiceType     string  `json:"service_type"`
	ServiceDate     string  `json:"service_date"`
	NextServiceDate string  `json:"next_service_date,omitempty"`
	ServiceCost     float64 `json:"service_cost"`
	Status          string  `json:"status"`
	PerformedBy     string  `json:"performed_by"`
	Notes           string  `json:"notes,omitempty"`
}

func serviceTags(id int64) []querycache.Tag {
	return []querycache.Tag{querycache.T(TagService), querycache.ID(TagService, idString(id))}
}

// ListRequest describes GET /service-records.
func (c *MaintenanceClient) ListRequest(q restclient.Query) querycache.Request {
	return listRequest[model.ServiceRecord](c.base, "/service-records", q, querycache.T(TagService))
}

// GetRequest describes GET /service-records/{id}.
func (c *MaintenanceClient) GetRequest(id int64) querycache.Request {
	return oneRequest[model.ServiceRecord](c.base, "/service-records/"+idString(id), querycache.ID(TagService, idString(id)))
}

// Get runs GetRequest through the cache.
func (c *MaintenanceClient) Get(ctx context.Context, id int64) (model.ServiceRecord, error) {
	return querycache.Get[model.ServiceRecord](ctx, c.cache, c.GetRequest(id))
}

// Create schedules a service.
func (c *MaintenanceClient) Create(ctx context.Context, in ServiceInput) (model.ServiceRecord, error) {
	return mutate[model.ServiceRecord](ctx, c.base, http.MethodPost, "/service-records", in, querycache.T(TagService))
}

// UpdateStatus changes the service status.
func (c *MaintenanceClient) UpdateStatus(ctx context.Context, id int64, status model.ServiceStatus) (model.ServiceRecord, error) {
	return mutate[model.ServiceRecord](ctx, c.base, http.MethodPatch, "/service-records/"+idString(id)+"/status",
		map[string]model.ServiceStatus{"status": status}, serviceTags(id)...)
}

// Delete removes a service record.
func (c *MaintenanceClient) Delete(ctx context.Context, id int64) error {
	_, err := mutate[struct{}](ctx, c.base, http.MethodDelete, "/service-records/"+idString(id), nil, serviceTags(id)...)
	return err
}
