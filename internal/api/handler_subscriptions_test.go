package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/store"
)

// memStore is an in-memory store.Store.
type memStore struct {
	mu   sync.Mutex
	subs map[string]model.PushSubscription
}

func newMemStore() *memStore {
	return &memStore{subs: map[string]model.PushSubscription{}}
}

func (m *memStore) ListPushSubscriptions(context.Context) ([]model.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.PushSubscription, 0, len(m.subs))
	for _, s := range m.subs {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) GetPushSubscription(_ context.Context, endpoint string) (model.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subs[endpoint]
	if !ok {
		return s, store.ErrNotFound
	}
	return s, nil
}

func (m *memStore) SavePushSubscription(_ context.Context, sub model.PushSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[sub.Endpoint] = sub
	return nil
}

func (m *memStore) DeletePushSubscription(_ context.Context, endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[endpoint]; !ok {
		return store.ErrNotFound
	}
	delete(m.subs, endpoint)
	return nil
}

func setupSubscriptionRouter(s store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(nil, s, &webpush.Options{VAPIDPublicKey: "public-key"})
	r.GET("/api/subscriptions", handler.GetSubscription)
	r.PUT("/api/subscriptions", handler.PutSubscription)
	r.DELETE("/api/subscriptions", handler.DeleteSubscription)
	r.GET("/api/vapid_public_key", handler.GetVAPIDPublicKey)
	return r
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPutSubscription(t *testing.T) {
	router := setupSubscriptionRouter(newMemStore())

	w := request(router, http.MethodPut, "/api/subscriptions", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())

	w = request(router, http.MethodPut, "/api/subscriptions",
		`{"endpoint":"https://push.example/a","p256dh":"k","auth":"a","verticals":["staff","spaceships"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "spaceships")
}

func TestSubscriptionLifecycle(t *testing.T) {
	s := newMemStore()
	router := setupSubscriptionRouter(s)
	const endpoint = "https://push.example/a"

	w := request(router, http.MethodPut, "/api/subscriptions",
		`{"endpoint":"`+endpoint+`","p256dh":"k","auth":"a","verticals":["staff","damage"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(router, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"verticals":["staff","damage"]}`, w.Body.String())

	w = request(router, http.MethodPut, "/api/subscriptions",
		`{"endpoint":"`+endpoint+`","p256dh":"k2","auth":"a2"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = request(router, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, "")
	assert.JSONEq(t, `{"verticals":[]}`, w.Body.String())

	w = request(router, http.MethodDelete, "/api/subscriptions", `{"endpoint":"`+endpoint+`"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = request(router, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVAPIDPublicKey(t *testing.T) {
	w := request(setupSubscriptionRouter(newMemStore()), http.MethodGet, "/api/vapid_public_key", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"public_key":"public-key"}`, w.Body.String())

	r := gin.New()
	r.GET("/k", NewHandler(nil, nil, nil).GetVAPIDPublicKey)
	assert.Equal(t, http.StatusServiceUnavailable, request(r, http.MethodGet, "/k", "").Code)
}
