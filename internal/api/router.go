package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Diaa1123/amz-qoder/internal/api/handlers"
	"github.com/Diaa1123/amz-qoder/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	pipelineHandler *handlers.PipelineHandler,
	catalogHandler *handlers.CatalogHandler,
	jobsHandler *handlers.JobsHandler,
	hub *Hub,
	botWebhook http.HandlerFunc,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Run event stream
	r.HandleFunc("/ws/runs", hub.HandleWS).Methods("GET")

	// Chat bot webhook
	if botWebhook != nil {
		r.HandleFunc("/bot/webhook", botWebhook).Methods("POST")
	}

	// API v1
	api := r.PathPrefix("/api").Subrouter()
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	// Pipeline triggers
	api.HandleFunc("/pipeline/daily", pipelineHandler.RunDaily).Methods("POST")
	api.HandleFunc("/pipeline/weekly", pipelineHandler.RunWeekly).Methods("POST")
	api.HandleFunc("/pipeline/create", pipelineHandler.RunCreate).Methods("POST")

	// Persisted output
	api.HandleFunc("/niches", catalogHandler.GetNiches).Methods("GET")
	api.HandleFunc("/ideas", catalogHandler.GetIdeas).Methods("GET")

	// Scheduler
	api.HandleFunc("/jobs", jobsHandler.GetJobs).Methods("GET")
	api.HandleFunc("/jobs/{name}/history", jobsHandler.GetJobHistory).Methods("GET")
	api.HandleFunc("/jobs/{name}/run", jobsHandler.RunJob).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "amz-qoder-api",
	})
}

// methodNotAllowedHandler rejects known paths hit with the wrong method.
// Without it mux falls through to 404 once a subrouter holds more than
// one route.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Method not allowed",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
