package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/badge"
	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/listctl"
	"rental-admin-backend/internal/mw"
	"rental-admin-backend/internal/restclient"
)

// GetBadges returns every badge table by enum name.
func (h *Handler) GetBadges(c *gin.Context) {
	c.JSON(http.StatusOK, badge.Catalog)
}

// GetOverview renders the overview panels.
func (h *Handler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Overviews.Render(c.Request.Context()))
}

// GetActiveCarModels lists the car models vehicles may be assigned to.
func (h *Handler) GetActiveCarModels(c *gin.Context) {
	rows, err := h.dash.ActiveCarModels(c.Request.Context())
	if err != nil {
		backendFailure(c, err, "Failed to load car models")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetBooking returns one booking row.
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.dash.Booking(c.Request.Context(), id)
	if err != nil {
		backendFailure(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetStaff returns one staff row.
func (h *Handler) GetStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.dash.Staff(c.Request.Context(), id)
	if err != nil {
		backendFailure(c, err, "Failed to load staff member")
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetSession describes the caller's session.
func (h *Handler) GetSession(c *gin.Context) {
	s := mw.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"id":         s.ID,
		"created_at": s.CreatedAt,
		"verticals":  dashboard.Verticals,
		"actions":    h.dash.ActionNames(),
		"completed":  s.Completed(),
	})
}

// EndSession closes the caller's session and its subscriptions.
func (h *Handler) EndSession(c *gin.Context) {
	h.dash.Sessions.End(mw.SessionFrom(c).ID)
	c.Status(http.StatusNoContent)
}

// GetNotices drains the notices waiting for the session.
func (h *Handler) GetNotices(c *gin.Context) {
	c.JSON(http.StatusOK, mw.SessionFrom(c).Notices())
}

// GetList renders the list view of a vertical.
func (h *Handler) GetList(c *gin.Context) {
	list, ok := h.sessionList(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, list.Render(c.Request.Context()))
}

// listCommand changes the list state. Fields apply in declaration order;
// absent fields are left alone.
type listCommand struct {
	ClearFilters  bool              `json:"clear_filters"`
	Search        *string           `json:"search"`
	Filters       map[string]string `json:"filters"`
	ItemsPerPage  *int              `json:"items_per_page"`
	Page          *int              `json:"page"`
	Next          bool              `json:"next"`
	Prev          bool              `json:"prev"`
	ToggleFilters bool              `json:"toggle_filters"`
}

// UpdateList applies a listCommand as one change and renders the result.
func (h *Handler) UpdateList(c *gin.Context) {
	list, ok := h.sessionList(c)
	if !ok {
		return
	}
	var cmd listCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ch := listctl.Change{
		ClearFilters: cmd.ClearFilters,
		Search:       cmd.Search,
		Filters:      cmd.Filters,
	}
	if cmd.ItemsPerPage != nil {
		ch.ItemsPerPage = *cmd.ItemsPerPage
		if ch.ItemsPerPage == 0 {
			listError(c, fmt.Errorf("%w: 0", listctl.ErrInvalidPageSize))
			return
		}
	}
	if cmd.Page != nil {
		ch.Page = max(*cmd.Page, 1)
	}
	if cmd.Next {
		ch.Step++
	}
	if cmd.Prev {
		ch.Step--
	}

	ctx := c.Request.Context()
	if err := list.Apply(ctx, ch); err != nil {
		listError(c, err)
		return
	}
	if cmd.ToggleFilters {
		list.ToggleFilters()
	}

	c.JSON(http.StatusOK, list.Render(ctx))
}

func (h *Handler) sessionList(c *gin.Context) (dashboard.List, bool) {
	list, err := mw.SessionFrom(c).List(dashboard.Vertical(c.Param("vertical")))
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownVertical) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown vertical " + c.Param("vertical")})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return list, true
}

func listError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, listctl.ErrInvalidPageSize), errors.Is(err, listctl.ErrUnknownFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "page_sizes": listctl.PageSizes})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// backendFailure answers 404 for missing records and 502 otherwise, with
// the backend's message when it sent one.
func backendFailure(c *gin.Context, err error, fallback string) {
	if dashboard.IsNotFound(err) || restclient.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": restclient.MessageOr(err, "record not found")})
		return
	}
	log.Printf("Backend request for %s failed: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": restclient.MessageOr(err, fallback)})
}
