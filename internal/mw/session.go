package mw

import (
	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/dashboard"
)

// SessionHeader carries the dashboard session id in both directions.
const SessionHeader = "X-Dashboard-Session"

const sessionKey = "dashboard.session"

// Session attaches the caller's dashboard session to the request, starting
// a new one when the header is missing or names an expired session. The
// effective id is echoed in the response header.
func Session(sessions *dashboard.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Ensure(c.GetHeader(SessionHeader))
		c.Header(SessionHeader, s.ID)
		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session attached by Session.
func SessionFrom(c *gin.Context) *dashboard.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*dashboard.Session); ok {
			return s
		}
	}
	return nil
}
