package mw

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheHeader reports HIT or MISS on cached routes.
const CacheHeader = "X-Cache"

type storedResponse struct {
	status   int
	header   http.Header
	body     []byte
	storedAt time.Time
}

type recordingWriter struct {
	gin.ResponseWriter
	buf    *bytes.Buffer
	maxAge string
}

func (w recordingWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("Cache-Control", w.maxAge)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps rendered answers of session independent GET routes,
// such as the badge catalogue, for a fixed time.
type ResponseCache struct {
	store *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewResponseCache creates a cache whose answers live for ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{store: cache.New(ttl, 2*ttl), ttl: ttl, now: time.Now}
}

// cacheKey ignores the order of query parameters.
func cacheKey(r *http.Request) string {
	return r.URL.Path + "?" + r.URL.Query().Encode()
}

// Handler serves stored answers with Age and Cache-Control headers. A
// request sent with "Cache-Control: no-cache" skips the lookup and replaces
// the stored answer. Only 2xx answers without cookies are kept, and never
// the session header a dashboard route may have set.
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c.Request)
		if c.GetHeader("Cache-Control") != "no-cache" {
			if v, found := rc.store.Get(key); found {
				rc.replay(c, v.(storedResponse))
				return
			}
		}

		c.Header(CacheHeader, "MISS")
		w := recordingWriter{
			ResponseWriter: c.Writer,
			buf:            &bytes.Buffer{},
			maxAge:         fmt.Sprintf("public, max-age=%d", int(rc.ttl.Seconds())),
		}
		c.Writer = w

		c.Next()

		status := w.Status()
		if status < 200 || status >= 300 || w.Header().Get("Set-Cookie") != "" {
			return
		}
		header := w.Header().Clone()
		header.Del(CacheHeader)
		header.Del("Cache-Control")
		header.Del(SessionHeader)
		rc.store.SetDefault(key, storedResponse{
			status:   status,
			header:   header,
			body:     w.buf.Bytes(),
			storedAt: rc.now(),
		})
	}
}

func (rc *ResponseCache) replay(c *gin.Context, resp storedResponse) {
	for k, v := range resp.header {
		c.Writer.Header()[k] = append([]string(nil), v...)
	}
	age := rc.now().Sub(resp.storedAt)
	remaining := rc.ttl - age
	if remaining < 0 {
		remaining = 0
	}
	c.Header(CacheHeader, "HIT")
	c.Header("Age", strconv.Itoa(int(age.Seconds())))
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(remaining.Seconds())))
	c.Data(resp.status, resp.header.Get("Content-Type"), resp.body)
	c.Abort()
}
