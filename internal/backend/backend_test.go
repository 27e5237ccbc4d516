package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

type recorder struct {
	mu   sync.Mutex
	hits map[string]int
}

func (r *recorder) hit(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits[key]++
}

func (r *recorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[key]
}

func newTestBackend(t *testing.T, h http.HandlerFunc) *Backend {
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	rc := restclient.NewWithHTTPClient(server.URL, restclient.StaticToken("t0k"), server.Client())
	return New(rc, querycache.New(time.Minute, time.Minute))
}

func TestStaffClient_ListOmitsEmptyFilters(t *testing.T) {
	var gotQuery string
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/staff-details/list", r.URL.Path)
		assert.Equal(t, "Bearer t0k", r.Header.Get("Authorization"))
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":[{"staff_id":1,"employee_id":"EMP001"}],"pagination":{"page":1,"limit":10,"total":1,"totalPages":1}}`))
	})

	page, err := b.Staff.List(context.Background(), restclient.Query{
		"page": "1", "limit": "10", "search": "", StaffFilterBranch: "", StaffFilterStatus: "active",
	})
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=1&status=active", gotQuery)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "EMP001", page.Data[0].EmployeeID)
}

func TestStaffClient_TerminateInvalidatesListAndOverview(t *testing.T) {
	rec := &recorder{hits: map[string]int{}}
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		rec.hit(r.Method + " " + r.URL.Path)
		switch r.URL.Path {
		case "/staff-details/list":
			w.Write([]byte(`[{"staff_id":7,"employee_id":"EMP007"}]`))
		case "/staff-details/overview":
			w.Write([]byte(`{"success":true,"data":{"total":1,"active":1,"terminated":0}}`))
		case "/staff-details/7/terminate":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2024-01-01", body["termination_date"])
			w.Write([]byte(`{"success":true,"data":{"staff_id":7,"employee_id":"EMP007","termination_date":"2024-01-01"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	list := b.Cache().Subscribe(b.Staff.ListRequest(restclient.Query{"page": "1"}))
	defer list.Close()
	overview := b.Cache().Subscribe(b.Staff.OverviewRequest())
	defer overview.Close()
	list.Refresh(ctx)
	overview.Refresh(ctx)
	list.Refresh(ctx)

	assert.Equal(t, 1, rec.count("GET /staff-details/list"))
	assert.Equal(t, 1, rec.count("GET /staff-details/overview"))

	rec2, err := b.Staff.Terminate(ctx, 7, "2024-01-01")
	require.NoError(t, err)
	assert.False(t, rec2.IsActive())

	assert.Equal(t, 2, rec.count("GET /staff-details/list"))
	assert.Equal(t, 2, rec.count("GET /staff-details/overview"))
}

func TestStaffClient_FailedMutationDoesNotInvalidate(t *testing.T) {
	rec := &recorder{hits: map[string]int{}}
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		rec.hit(r.Method + " " + r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"success":false,"message":"Staff has active bookings"}`))
			return
		}
		w.Write([]byte(`[]`))
	})

	ctx := context.Background()
	list := b.Cache().Subscribe(b.Staff.ListRequest(nil))
	defer list.Close()
	list.Refresh(ctx)

	err := b.Staff.Delete(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, "Staff has active bookings", restclient.MessageOr(err, "Failed to delete staff"))
	assert.Equal(t, 1, rec.count("GET /staff-details/list"))
}

func TestDamageClient_ListAndDateRange(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/damage-reports/date-range":
			var body DateRange
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}, body)
			w.Write([]byte(`[{"incident_id":1,"status":"Reported"},{"incident_id":2,"status":"Repaired"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/damage-reports":
			assert.Equal(t, "end_date=2024-01-31&start_date=2024-01-01&status=Reported&vehicle_id=4", r.URL.RawQuery)
			w.Write([]byte(`{"success":true,"data":[{"incident_id":1,"status":"Reported"}]}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	page, err := querycache.Get[restclient.Page[model.DamageReport]](ctx, b.Cache(),
		b.Damage.DateRangeRequest(DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}))
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	page, err = querycache.Get[restclient.Page[model.DamageReport]](ctx, b.Cache(), b.Damage.ListRequest(restclient.Query{
		DamageFilterStartDate: "2024-01-01", DamageFilterEndDate: "2024-01-31",
		DamageFilterStatus: "Reported", DamageFilterVehicleID: "4",
	}))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Data[0].IncidentID)
}

func TestBookingClient_AllWalksPages(t *testing.T) {
	b := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"success":true,"data":[{"booking_id":1},{"booking_id":2}],"pagination":{"page":1,"limit":2,"total":3,"totalPages":2}}`))
		case "2":
			w.Write([]byte(`{"success":true,"data":[{"booking_id":3}],"pagination":{"page":2,"limit":2,"total":3,"totalPages":2}}`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	all, err := b.Bookings.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[2].BookingID)
}
