package adapthttp

import (
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"weighttracker/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight   *app.WeightService
	users    *app.UserService
	health   *app.HealthService
	external *app.ExternalService
	graphql  http.Handler

	corsOrigins []string
	limiter     *rate.Limiter
	validate    *validator.Validate
}

// New creates a Server wired to the given application services. gql serves
// /graphql.
func New(ws *app.WeightService, us *app.UserService, hs *app.HealthService, es *app.ExternalService, gql http.Handler) *Server {
	return &Server{
		weight:   ws,
		users:    us,
		health:   hs,
		external: es,
		graphql:  gql,
		validate: newValidator(),
	}
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
// Without it no CORS headers are sent. Credentials are allowed only when no
// origin is the "*" wildcard.
func (s *Server) WithCORSOrigins(origins []string) *Server {
	s.corsOrigins = origins
	return s
}

// WithRateLimit throttles /api/external to rps requests per second. A
// non-positive rps leaves it unthrottled.
func (s *Server) WithRateLimit(rps float64, burst int) *Server {
	if rps <= 0 {
		s.limiter = nil
		return s
	}
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	external := http.NewServeMux()
	external.HandleFunc("/webhook", s.handleWebhook)
	external.HandleFunc("/fetch-data", s.handleFetchData)
	external.HandleFunc("/sync", s.handleSync)
	external.HandleFunc("/logs", s.handleLogs)

	api := http.NewServeMux()
	api.Handle("/external/", s.rateLimit(http.StripPrefix("/external", external)))
	api.HandleFunc("/weight-records", s.handleWeightRecords)
	api.HandleFunc("/weight-records/{id}", s.handleWeightRecord)
	api.HandleFunc("/users/{id}", s.handleUser)
	api.HandleFunc("/users/{id}/weight-records", s.handleUserWeightRecords)

	root := http.NewServeMux()
	root.HandleFunc("/{$}", s.handleRoot)
	root.HandleFunc("/health", s.handleHealth)
	if s.graphql != nil {
		root.Handle("/graphql", s.graphql)
	}
	root.Handle("/api/", http.StripPrefix("/api", api))

	var h http.Handler = withNoCache(root)
	if len(s.corsOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: !slices.Contains(s.corsOrigins, "*"),
		}).Handler(h)
	}
	return s.loggingMiddleware(h)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Weight Tracker API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"graphql":       "/graphql",
			"graphiql":      "/graphql (open in browser)",
			"health":        "/health",
			"externalApi":   "/api/external",
			"weightRecords": "/api/weight-records",
		},
	})
}
