package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/KaramelBytes/studentdash/internal/dashboard"
)

// Options configures the HTTP surface.
type Options struct {
	// CORSOrigins allowed for the JSON API.
	CORSOrigins []string
	// CSVPath is the well-known path the local CSV is served at; empty disables it.
	CSVPath string
	// Timeout bounds each request.
	Timeout time.Duration
	// Quiet disables request logging.
	Quiet bool
}

// NewRouter mounts the dashboard page, the JSON API and health probes.
func NewRouter(d *dashboard.Dashboard, opt Options) http.Handler {
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if !opt.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opt.Timeout))

	origins := opt.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// HTML page (session-backed UI state)
	r.Get("/", PageHandler(d))
	r.Get("/sort/{key}", SortHandler(d))
	r.Post("/predict", PredictFormHandler(d))

	// JSON API (stateless; state travels in the request)
	r.Route("/api", func(ar chi.Router) {
		ar.Get("/overview", OverviewHandler(d))
		ar.Get("/students", StudentsHandler(d))
		ar.Get("/charts/radar", RadarHandler(d))
		ar.Get("/charts/scatter", ScatterHandler(d))
		ar.Post("/predict", PredictHandler())
	})

	if opt.CSVPath != "" {
		r.Get(opt.CSVPath, CSVHandler(d))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", ReadyHandler(d))
	return r
}
