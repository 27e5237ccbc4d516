package backend

import (
	"context"
	"net/http"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Damage list filter keys.
const (
	DamageFilterStatus    = "status"
	DamageFilterVehicleID = "vehicle_id"
	DamageFilterStartDate = "start_date"
	DamageFilterEndDate   = "end_date"
)

// DamageClient talks to the damage-reports endpoints.
type DamageClient struct {
	base
}

// DamageInput is the body of the create call.
type DamageInput struct {
	BookingID           int64   `json:"booking_id"`
	VehicleID           int64   `json:"vehicle_id"`
	CustomerID          int64   `json:"customer_id"`
	IncidentDescription string  `json:"incident_description"`
	DamageCost          float64 `json:"damage_cost"`
	DateRecorded        string  `json:"date_recorded"`
	Status              string  `json:"status"`
}

// DateRange is the body of the date-range filter.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func damageTags(id int64) []querycache.Tag {
	return []querycache.Tag{
		querycache.T(TagDamage),
		querycache.ID(TagDamage, idString(id)),
		querycache.T(TagDamageSummary),
	}
}

// ListRequest describes GET /damage-reports with search and the DamageFilter*
// keys. The endpoint answers every match without pagination metadata.
func (c *DamageClient) ListRequest(q restclient.Query) querycache.Request {
	return listRequest[model.DamageReport](c.base, "/damage-reports", q, querycache.T(TagDamage))
}

// DateRangeRequest describes POST /damage-reports/date-range, which answers
// every incident recorded between the two dates and takes no other filter.
func (c *DamageClient) DateRangeRequest(r DateRange) querycache.Request {
	return postRequest[model.DamageReport](c.base, "/damage-reports/date-range", r, querycache.T(TagDamage))
}

// GetRequest describes GET /damage-reports/{id}.
func (c *DamageClient) GetRequest(id int64) querycache.Request {
	return oneRequest[model.DamageReport](c.base, "/damage-reports/"+idString(id), querycache.ID(TagDamage, idString(id)))
}

// Get runs GetRequest through the cache.
func (c *DamageClient) Get(ctx context.Context, id int64) (model.DamageReport, error) {
	return querycache.Get[model.DamageReport](ctx, c.cache, c.GetRequest(id))
}

// SummaryRequest describes GET /damage-reports/summary.
func (c *DamageClient) SummaryRequest() querycache.Request {
	return oneRequest[model.DamageSummary](c.base, "/damage-reports/summary", querycache.T(TagDamageSummary), querycache.T(TagDamage))
}

// Create files a new incident.
func (c *DamageClient) Create(ctx context.Context, in DamageInput) (model.DamageReport, error) {
	return mutate[model.DamageReport](ctx, c.base, http.MethodPost, "/damage-reports", in,
		querycache.T(TagDamage), querycache.T(TagDamageSummary))
}

// UpdateStatus moves the incident through its workflow.
func (c *DamageClient) UpdateStatus(ctx context.Context, id int64, t model.DamageTransition) (model.DamageReport, error) {
	body := struct {
		Status       model.DamageStatus `json:"status"`
		ResolvedDate *string            `json:"resolved_date"`
	}{t.Status, t.ResolvedDate}
	return mutate[model.DamageReport](ctx, c.base, http.MethodPatch, "/damage-reports/"+idString(id)+"/status", body, damageTags(id)...)
}

// UpdateCost sets the assessed damage cost.
func (c *DamageClient) UpdateCost(ctx context.Context, id int64, cost float64) (model.DamageReport, error) {
	return mutate[model.DamageReport](ctx, c.base, http.MethodPatch, "/damage-reports/"+idString(id)+"/cost",
		map[string]float64{"damage_cost": cost}, damageTags(id)...)
}

// Delete removes an incident.
func (c *DamageClient) Delete(ctx context.Context, id int64) error {
	_, err := mutate[struct{}](ctx, c.base, http.MethodDelete, "/damage-reports/"+idString(id), nil, damageTags(id)...)
	return err
}
