package backend

import (
	"context"
	"net/http"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// Staff list filter keys.
const (
	StaffFilterBranch         = "branch"
	StaffFilterJobTitle       = "job_title"
	StaffFilterEmploymentType = "employment_type"
	StaffFilterStatus         = "status"
)

// Activity log filter keys.
const (
	ActivityFilterStaffID = "staff_id"
	ActivityFilterAction  = "action"
	ActivityFilterTable   = "table_name"
)

// StaffClient talks to the staff-details and activity-logs endpoints.
type StaffClient struct {
	base
}

// StaffInput is the body of create and update calls.
type StaffInput struct {
	EmployeeID     string  `json:"employee_id"`
	FirstName      string  `json:"first_name,omitempty"`
	LastName       string  `json:"last_name,omitempty"`
	Email          string  `json:"email,omitempty"`
	JobTitle       string  `json:"job_title"`
	Department     string  `json:"department"`
	BranchID       int64   `json:"branch_id"`
	Salary         float64 `json:"salary"`
	EmploymentType string  `json:"employment_type"`
	HireDate       string  `json:"hire_date"`
}

func staffTags(id int64) []querycache.Tag {
	return []querycache.Tag{
		querycache.T(TagStaff),
		querycache.ID(TagStaff, idString(id)),
		querycache.T(TagStaffOverview),
	}
}

// ListRequest describes GET /staff-details/list with page, limit, search and
// the StaffFilter* keys.
func (c *StaffClient) ListRequest(q restclient.Query) querycache.Request {
	return listRequest[model.StaffRecord](c.base, "/staff-details/list", q, querycache.T(TagStaff))
}

// List runs ListRequest through the cache.
func (c *StaffClient) List(ctx context.Context, q restclient.Query) (restclient.Page[model.StaffRecord], error) {
	return querycache.Get[restclient.Page[model.StaffRecord]](ctx, c.cache, c.ListRequest(q))
}

// GetRequest describes GET /staff-details/{id}.
func (c *StaffClient) GetRequest(id int64) querycache.Request {
	return oneRequest[model.StaffRecord](c.base, "/staff-details/"+idString(id), querycache.ID(TagStaff, idString(id)))
}

// Get runs GetRequest through the cache.
func (c *StaffClient) Get(ctx context.Context, id int64) (model.StaffRecord, error) {
	return querycache.Get[model.StaffRecord](ctx, c.cache, c.GetRequest(id))
}

// OverviewRequest describes GET /staff-details/overview. It provides the
// coarse Staff tag too, so any staff change refreshes the counts.
func (c *StaffClient) OverviewRequest() querycache.Request {
	return oneRequest[model.StaffOverview](c.base, "/staff-details/overview", querycache.T(TagStaffOverview), querycache.T(TagStaff))
}

// Overview runs OverviewRequest through the cache.
func (c *StaffClient) Overview(ctx context.Context) (model.StaffOverview, error) {
	return querycache.Get[model.StaffOverview](ctx, c.cache, c.OverviewRequest())
}

// ActivityLogsRequest describes GET /activity-logs. Logs are read only.
func (c *StaffClient) ActivityLogsRequest(q restclient.Query) querycache.Request {
	return listRequest[model.ActivityLogEntry](c.base, "/activity-logs", q, querycache.T(TagActivityLog))
}

// Create registers a staff member.
func (c *StaffClient) Create(ctx context.Context, in StaffInput) (model.StaffRecord, error) {
	return mutate[model.StaffRecord](ctx, c.base, http.MethodPost, "/staff-details", in,
		querycache.T(TagStaff), querycache.T(TagStaffOverview), querycache.T(TagActivityLog))
}

// Update replaces the editable fields of a staff member.
func (c *StaffClient) Update(ctx context.Context, id int64, in StaffInput) (model.StaffRecord, error) {
	return mutate[model.StaffRecord](ctx, c.base, http.MethodPut, "/staff-details/"+idString(id), in,
		append(staffTags(id), querycache.T(TagActivityLog))...)
}

// Terminate sets the termination date, which makes the record inactive.
func (c *StaffClient) Terminate(ctx context.Context, id int64, date string) (model.StaffRecord, error) {
	return mutate[model.StaffRecord](ctx, c.base, http.MethodPatch, "/staff-details/"+idString(id)+"/terminate",
		map[string]string{"termination_date": date}, append(staffTags(id), querycache.T(TagActivityLog))...)
}

// UpdateBranch moves a staff member to another branch.
func (c *StaffClient) UpdateBranch(ctx context.Context, id, branchID int64) (model.StaffRecord, error) {
	return mutate[model.StaffRecord](ctx, c.base, http.MethodPatch, "/staff-details/"+idString(id)+"/branch",
		map[string]int64{"branch_id": branchID}, append(staffTags(id), querycache.T(TagActivityLog))...)
}

// Delete removes a staff member.
func (c *StaffClient) Delete(ctx context.Context, id int64) error {
	_, err := mutate[struct{}](ctx, c.base, http.MethodDelete, "/staff-details/"+idString(id), nil,
		append(staffTags(id), querycache.T(TagActivityLog))...)
	return err
}
