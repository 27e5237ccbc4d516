// Package sandbox emulates the rental REST backend over gorm so the
// dashboard can run without the production service. Response envelopes
// differ per endpoint on purpose, matching what the real backend sends.
package sandbox

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/restclient"
	"rental-admin-backend/internal/store"
)

// Options tunes the sandbox behaviour.
type Options struct {
	// AllowBackwardDamage lets damage reports move back in their workflow.
	AllowBackwardDamage bool
	// Today overrides the date used for stamps; parse.Today by default.
	Today func() string
}

// Server serves the backend endpoints.
type Server struct {
	rentals *store.Rentals
	opts    Options
}

func New(r *store.Rentals, opts Options) *Server {
	if opts.Today == nil {
		opts.Today = parse.Today
	}
	return &Server{rentals: r, opts: opts}
}

// NewRouter mounts the sandbox under /api.
func NewRouter(s *Server) *gin.Engine {
	r := gin.Default()
	s.Register(r.Group("/api"))
	return r
}

// Register adds every endpoint to g.
func (s *Server) Register(g gin.IRouter) {
	staff := g.Group("/staff-details")
	{
		staff.GET("/list", s.listStaff)
		staff.GET("/overview", s.staffOverview)
		staff.GET("/:id", s.getStaff)
		staff.POST("", s.createStaff)
		staff.PUT("/:id", s.updateStaff)
		staff.PATCH("/:id/terminate", s.terminateStaff)
		staff.PATCH("/:id/branch", s.updateStaffBranch)
		staff.DELETE("/:id", s.deleteStaff)
	}
	g.GET("/activity-logs", s.listActivityLogs)

	bookings := g.Group("/bookings")
	{
		bookings.GET("", s.listBookings)
		bookings.GET("/:id", s.getBooking)
		bookings.PATCH("/:id/status", s.updateBookingStatus)
		bookings.PATCH("/:id/totals", s.updateBookingTotals)
		bookings.PATCH("/:id/cancel", s.cancelBooking)
	}

	damage := g.Group("/damage-reports")
	{
		damage.GET("", s.listDamage)
		damage.POST("/date-range", s.damageByDateRange)
		damage.GET("/summary", s.damageSummary)
		damage.GET("/:id", s.getDamage)
		damage.POST("", s.createDamage)
		damage.PATCH("/:id/status", s.updateDamageStatus)
		damage.PATCH("/:id/cost", s.updateDamageCost)
		damage.DELETE("/:id", s.deleteDamage)
	}

	services := g.Group("/service-records")
	{
		services.GET("", s.listServices)
		services.GET("/:id", s.getService)
		services.POST("", s.createService)
		services.PATCH("/:id/status", s.updateServiceStatus)
		services.DELETE("/:id", s.deleteService)
	}

	models := g.Group("/car-models")
	{
		models.GET("", s.listCarModels)
		models.GET("/:id", s.getCarModel)
		models.POST("", s.createCarModel)
		models.PATCH("/:id/daily-rate", s.updateDailyRate)
		models.PATCH("/:id/active", s.setCarModelActive)
		models.DELETE("/:id", s.deleteCarModel)
	}

	payments := g.Group("/payments")
	{
		payments.GET("", s.listPayments)
		payments.GET("/summary", s.paymentSummary)
		payments.GET("/:id", s.getPayment)
		payments.PATCH("/:id/status", s.updatePaymentStatus)
		payments.POST("/:id/refund", s.refundPayment)
	}
}

func listQuery(c *gin.Context, searchColumns ...string) store.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return store.ListQuery{
		Page:          page,
		Limit:         limit,
		Search:        c.Query("search"),
		SearchColumns: searchColumns,
		Equal:         map[string]any{},
	}
}

// intFilter parses an optional numeric query parameter. It answers 400 and
// returns false when the value is malformed.
func intFilter(c *gin.Context, key string) (any, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid "+key)
		return nil, false
	}
	return v, true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

// paginated writes {success, data, pagination}.
func paginated(c *gin.Context, items any, total int64, q store.ListQuery) {
	page, limit := q.Bounds()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"pagination": restclient.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      int(total),
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	})
}

// wrapped writes {success, data} with an optional message.
func wrapped(c *gin.Context, status int, data any, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// failErr maps store errors to responses. what names the entity.
func failErr(c *gin.Context, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, what+" not found")
		return
	}
	log.Printf("Sandbox error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + what})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
