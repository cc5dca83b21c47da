package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/blogem/enquiry-desk/config"
)

// SetupCORS returns CORS middleware for programmatic enquiry submitters
func SetupCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With", "Accept"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes preflight cache
	})

	return c.Handler
}
