package http

import (
	"net/http"
	"time"

	"webinar-token-service/internal/logger"
	"webinar-token-service/internal/security"
	"webinar-token-service/internal/service"
	"webinar-token-service/internal/storage"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	TokenService service.TokenService
	Forms        storage.FormStore
	Tokens       security.TokenManager
	Cookie       SessionCookie
}

// NewRouter creates the router with all endpoints
func NewRouter(c *Container) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	RegisterFormRoutes(r, NewFormHandler(c.Forms, c.Tokens, c.Cookie))
	RegisterTokenAPIRoutes(r, NewTokenAPIHandler(c.TokenService))

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
