package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/backend"
	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x?a=1", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2, time.Minute)
	r := gin.New()
	r.Use(RateLimiterWith(limiter))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	w := serve(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, 1, limiter.Tracked())
	assert.Same(t, limiter.GetLimiter("192.0.2.1"), limiter.GetLimiter("192.0.2.1"))
}

func cacheRouter(rc *ResponseCache, status int, calls *int) *gin.Engine {
	r := gin.New()
	r.GET("/x", rc.Handler(), func(c *gin.Context) {
		*calls++
		c.Header(SessionHeader, "s-1")
		c.JSON(status, gin.H{"calls": *calls})
	})
	return r
}

func get(r http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResponseCache(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rc := NewResponseCache(time.Minute)
	rc.now = func() time.Time { return now }
	calls := 0
	r := cacheRouter(rc, http.StatusOK, &calls)

	first := get(r, "/x?a=1&b=2", nil)
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))
	assert.Equal(t, "public, max-age=60", first.Header().Get("Cache-Control"))

	now = now.Add(15 * time.Second)
	second := get(r, "/x?b=2&a=1", nil)
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))
	assert.Equal(t, "15", second.Header().Get("Age"))
	assert.Equal(t, "public, max-age=45", second.Header().Get("Cache-Control"))
	assert.Empty(t, second.Header().Get(SessionHeader))
	assert.Equal(t, 1, calls)

	assert.Equal(t, "MISS", get(r, "/x?a=2", nil).Header().Get(CacheHeader))
	assert.Equal(t, 2, calls)
}

func TestResponseCache_NoCacheRefreshes(t *testing.T) {
	calls := 0
	r := cacheRouter(NewResponseCache(time.Minute), http.StatusOK, &calls)

	get(r, "/x", nil)
	w := get(r, "/x", http.Header{"Cache-Control": {"no-cache"}})
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	assert.JSONEq(t, `{"calls":2}`, w.Body.String())

	w = get(r, "/x", nil)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
	assert.JSONEq(t, `{"calls":2}`, w.Body.String())
	assert.Equal(t, 2, calls)
}

func TestResponseCache_SkipsErrorsAndCookies(t *testing.T) {
	calls := 0
	r := cacheRouter(NewResponseCache(time.Minute), http.StatusBadGateway, &calls)
	get(r, "/x", nil)
	w := get(r, "/x", nil)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	assert.Empty(t, w.Header().Get("Cache-Control"))
	assert.Equal(t, 2, calls)

	rc := NewResponseCache(time.Minute)
	cookies := gin.New()
	cookies.GET("/x", rc.Handler(), func(c *gin.Context) {
		calls++
		c.SetCookie("pref", "dark", 60, "/", "", false, true)
		c.String(http.StatusOK, "ok")
	})
	get(cookies, "/x", nil)
	assert.Equal(t, "MISS", get(cookies, "/x", nil).Header().Get(CacheHeader))
	assert.Equal(t, 4, calls)
}

func TestSession(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	rc := restclient.NewWithHTTPClient("http://127.0.0.1:1", nil, http.DefaultClient)
	d := dashboard.New(backend.New(rc, querycache.New(time.Minute, time.Minute)), cfg, nil)
	t.Cleanup(func() { d.Sessions.Close(context.Background()) })

	var seen *dashboard.Session
	r := gin.New()
	r.Use(Session(d.Sessions))
	r.GET("/x", func(c *gin.Context) {
		seen = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	w := serve(r, nil)
	id := w.Header().Get(SessionHeader)
	require.NotEmpty(t, id)
	require.NotNil(t, seen)
	assert.Equal(t, id, seen.ID)

	w = serve(r, http.Header{SessionHeader: []string{id}})
	assert.Equal(t, id, w.Header().Get(SessionHeader))
	assert.Equal(t, 1, d.Sessions.Count())

	w = serve(r, http.Header{SessionHeader: []string{"expired"}})
	assert.NotEqual(t, "expired", w.Header().Get(SessionHeader))
	assert.Equal(t, 2, d.Sessions.Count())
}

func TestCORSExposesSessionHeader(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SessionHeader, "abc")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/session", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", SessionHeader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), SessionHeader)

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
