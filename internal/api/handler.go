package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"rental-admin-backend/internal/dashboard"
	"rental-admin-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	dash    *dashboard.Dashboard
	store   store.Store
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(d *dashboard.Dashboard, s store.Store, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		dash:    d,
		store:   s,
		webpush: webpushOptions,
	}
}
