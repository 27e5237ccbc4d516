package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/action"
	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/mw"
)

// GetActions lists the action names.
func (h *Handler) GetActions(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.ActionNames())
}

// GetAction renders the modal of an action.
func (h *Handler) GetAction(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}

type openRequest struct {
	ID int64 `json:"id"`
}

// OpenAction opens a modal, seeded from entity id when the action edits one.
func (h *Handler) OpenAction(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := m.OpenFor(c.Request.Context(), req.ID); err != nil {
		actionError(c, m, err)
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}

// EditAction merges field values into the open form.
func (h *Handler) EditAction(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	patch, err := c.GetRawData()
	if err != nil || len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := m.Edit(patch); err != nil {
		actionError(c, m, err)
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}

// SubmitAction validates and submits, or stops at the confirmation step.
func (h *Handler) SubmitAction(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	outcome, err := m.Submit(c.Request.Context())
	if err != nil {
		actionError(c, m, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome, "modal": m.Snapshot()})
}

// ConfirmAction fires a destructive action awaiting confirmation.
func (h *Handler) ConfirmAction(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	outcome, err := m.Confirm(c.Request.Context())
	if err != nil {
		actionError(c, m, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome, "modal": m.Snapshot()})
}

// CancelConfirmation returns a confirming modal to editing.
func (h *Handler) CancelConfirmation(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	if err := m.CancelConfirm(); err != nil {
		actionError(c, m, err)
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}

// CloseAction discards the open form.
func (h *Handler) CloseAction(c *gin.Context) {
	m, ok := sessionAction(c)
	if !ok {
		return
	}
	if err := m.Close(); err != nil {
		actionError(c, m, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func sessionAction(c *gin.Context) (action.Handle, bool) {
	m, err := mw.SessionFrom(c).Action(c.Param("action"))
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownAction) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown action " + c.Param("action")})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return m, true
}

func actionError(c *gin.Context, m action.Handle, err error) {
	var verr *action.ValidationError
	var serr *action.SubmitError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields, "modal": m.Snapshot()})
	case errors.As(err, &serr):
		c.JSON(http.StatusBadGateway, gin.H{"error": serr.Message, "modal": m.Snapshot()})
	case dashboard.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, action.ErrReadOnlyField), errors.Is(err, action.ErrInvalidEdit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, action.ErrBusy), errors.Is(err, action.ErrNotOpen), errors.Is(err, action.ErrNotConfirming):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "modal": m.Snapshot()})
	default:
		backendFailure(c, err, "Failed to process "+m.Name())
	}
}
