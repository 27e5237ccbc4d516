package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"rental-admin-backend/config"
	"rental-admin-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// The badge catalog never changes while the process runs.
	caching := mw.NewResponseCache(time.Hour).Handler()

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/badges", caching, h.GetBadges)
		api.GET("/overview", h.GetOverview)
		api.GET("/car-models/active", h.GetActiveCarModels)
		api.GET("/bookings/:id", h.GetBooking)
		api.GET("/staff/:id", h.GetStaff)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		session := api.Group("")
		session.Use(mw.Session(h.dash.Sessions))
		{
			session.GET("/session", h.GetSession)
			session.DELETE("/session", h.EndSession)
			session.GET("/notices", h.GetNotices)

			session.GET("/lists/:vertical", h.GetList)
			session.PATCH("/lists/:vertical", h.UpdateList)

			session.GET("/actions", h.GetActions)
			session.GET("/actions/:action", h.GetAction)
			session.POST("/actions/:action/open", h.OpenAction)
			session.PATCH("/actions/:action", h.EditAction)
			session.POST("/actions/:action/submit", h.SubmitAction)
			session.POST("/actions/:action/confirm", h.ConfirmAction)
			session.POST("/actions/:action/cancel", h.CancelConfirmation)
			session.DELETE("/actions/:action", h.CloseAction)
		}
	}

	return r
}
