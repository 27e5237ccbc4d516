package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/mw"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

func newTestRouter(t *testing.T, routes map[string]http.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	rc := restclient.NewWithHTTPClient(server.URL, nil, server.Client())
	d := dashboard.New(backend.New(rc, querycache.New(time.Minute, time.Minute)), cfg, nil)
	return NewRouter(NewHandler(d, newMemStore(), nil), cfg.Server)
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func sessionRequest(r http.Handler, session, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(mw.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const staffPage = `{"success":true,"data":[` +
	`{"staff_id":7,"employee_id":"EMP007","first_name":"Rosa","last_name":"Diaz","job_title":"Agent"},` +
	`{"staff_id":8,"employee_id":"EMP008","first_name":"Ken","last_name":"Ito","job_title":"Mechanic","termination_date":"2024-02-01"}` +
	`],"pagination":{"page":1,"limit":10,"total":2,"totalPages":1}}`

func TestHealthAndBadges(t *testing.T) {
	router := newTestRouter(t, nil)

	w := sessionRequest(router, "", http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = sessionRequest(router, "", http.MethodGet, "/api/badges", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(mw.CacheHeader))
	assert.Contains(t, w.Body.String(), "Terminated")

	w = sessionRequest(router, "", http.MethodGet, "/api/badges", "")
	assert.Equal(t, "HIT", w.Header().Get(mw.CacheHeader))
}

func TestSessionAndList(t *testing.T) {
	router := newTestRouter(t, map[string]http.HandlerFunc{
		"GET /staff-details/list": jsonBody(staffPage),
	})

	w := sessionRequest(router, "", http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	session := w.Header().Get(mw.SessionHeader)
	require.NotEmpty(t, session)

	var info struct {
		ID        string   `json:"id"`
		Verticals []string `json:"verticals"`
		Actions   []string `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, session, info.ID)
	assert.Contains(t, info.Verticals, "staff")
	assert.Contains(t, info.Actions, dashboard.ActionCreateStaff)

	w = sessionRequest(router, session, http.MethodGet, "/api/lists/staff", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session, w.Header().Get(mw.SessionHeader))

	var view struct {
		State      string            `json:"state"`
		TotalItems int               `json:"total_items"`
		Items      []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "success", view.State)
	assert.Equal(t, 2, view.TotalItems)
	assert.Len(t, view.Items, 2)

	w = sessionRequest(router, session, http.MethodPatch, "/api/lists/staff", `{"items_per_page":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "page_sizes")

	w = sessionRequest(router, session, http.MethodPatch, "/api/lists/staff", `{"search":"rosa","toggle_filters":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"search_term":"rosa"`)
	assert.Contains(t, w.Body.String(), `"show_filters":true`)

	w = sessionRequest(router, session, http.MethodGet, "/api/lists/spaceships", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = sessionRequest(router, session, http.MethodDelete, "/api/session", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateList_FetchesOncePerPatch(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	seen := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), queries...)
	}
	router := newTestRouter(t, map[string]http.HandlerFunc{
		"GET /staff-details/list": func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			queries = append(queries, r.URL.RawQuery)
			mu.Unlock()
			jsonBody(staffPage)(w, r)
		},
	})

	w := sessionRequest(router, "", http.MethodGet, "/api/lists/staff", "")
	require.Equal(t, http.StatusOK, w.Code)
	session := w.Header().Get(mw.SessionHeader)
	require.Len(t, seen(), 1)

	w = sessionRequest(router, session, http.MethodPatch, "/api/lists/staff",
		`{"clear_filters":true,"search":"rosa","filters":{"status":"active","branch":"2"},"items_per_page":20,"page":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, seen(), 2)
	assert.Equal(t, "branch=2&limit=20&page=1&search=rosa&status=active", seen()[1])

	w = sessionRequest(router, session, http.MethodPatch, "/api/lists/staff", `{"search":"ken","filters":{"colour":"red"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = sessionRequest(router, session, http.MethodPatch, "/api/lists/staff", `{"search":"ken","items_per_page":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, seen(), 2)

	w = sessionRequest(router, session, http.MethodGet, "/api/lists/staff", "")
	assert.Contains(t, w.Body.String(), `"search_term":"rosa"`)
}

func TestActionRoutes(t *testing.T) {
	router := newTestRouter(t, nil)
	w := sessionRequest(router, "", http.MethodGet, "/api/session", "")
	session := w.Header().Get(mw.SessionHeader)

	w = sessionRequest(router, session, http.MethodGet, "/api/actions/launch_rocket", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	path := "/api/actions/" + dashboard.ActionCreateStaff
	w = sessionRequest(router, session, http.MethodPost, path+"/submit", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = sessionRequest(router, session, http.MethodPost, path+"/open", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phase":"editing"`)

	w = sessionRequest(router, session, http.MethodPatch, path, `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = sessionRequest(router, session, http.MethodPost, path+"/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var failed struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failed))
	assert.Contains(t, failed.Fields, "employee_id")
	assert.Contains(t, failed.Fields, "first_name")
	assert.NotContains(t, failed.Fields, "hire_date")

	w = sessionRequest(router, session, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBackendFailures(t *testing.T) {
	router := newTestRouter(t, map[string]http.HandlerFunc{
		"GET /bookings/5": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Booking not found"}`))
		},
		"GET /staff-details/6": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Failed to fetch staff"}`))
		},
	})

	w := sessionRequest(router, "", http.MethodGet, "/api/bookings/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Booking not found"}`, w.Body.String())

	w = sessionRequest(router, "", http.MethodGet, "/api/staff/6", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = sessionRequest(router, "", http.MethodGet, "/api/staff/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
