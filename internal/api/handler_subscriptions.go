package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/store"
)

type putSubscriptionRequest struct {
	Endpoint  string   `json:"endpoint" binding:"required,url"`
	P256DH    string   `json:"p256dh" binding:"required"`
	Auth      string   `json:"auth" binding:"required"`
	Verticals []string `json:"verticals"`
}

func knownVertical(v string) bool {
	for _, known := range dashboard.Verticals {
		if string(known) == v {
			return true
		}
	}
	return false
}

// PutSubscription creates a subscription or replaces its keys and verticals.
// An empty vertical list subscribes to every vertical.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	for _, v := range req.Verticals {
		if !knownVertical(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown vertical " + v})
			return
		}
	}

	sub := model.PushSubscription{
		Endpoint:  req.Endpoint,
		P256DH:    req.P256DH,
		Auth:      req.Auth,
		Verticals: req.Verticals,
		CreatedAt: time.Now(),
	}
	if err := h.store.SavePushSubscription(c.Request.Context(), sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.store.DeletePushSubscription(c.Request.Context(), req.Endpoint)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscription returns the verticals a subscription covers.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	sub, err := h.store.GetPushSubscription(c.Request.Context(), endpoint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	verticals := sub.Verticals
	if verticals == nil {
		verticals = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"verticals": verticals})
}
