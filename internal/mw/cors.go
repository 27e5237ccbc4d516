package mw

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps a handler for the browser shell. The session header must be
// both accepted and exposed or the shell cannot keep its session.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization", SessionHeader},
		ExposedHeaders:   []string{SessionHeader, CacheHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}
