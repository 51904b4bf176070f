// Package api serves the ROI engine over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/sells-group/roi-cli/internal/config"
	"github.com/sells-group/roi-cli/internal/engine"
	"github.com/sells-group/roi-cli/internal/store"
)

// Options configures a Server.
type Options struct {
	RateLimit        float64 // requests per second per client; 0 disables limiting
	Burst            int
	AllowedOrigins   []string
	Profile          engine.Profile
	ViralConcurrency int
}

// OptionsFromConfig maps server and viral config onto Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	profile, err := engine.ProfileFromConfig(cfg.Viral)
	if err != nil {
		return Options{}, err
	}
	return Options{
		RateLimit:        cfg.Server.RateLimit,
		Burst:            cfg.Server.Burst,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		Profile:          profile,
		ViralConcurrency: cfg.Viral.Concurrency,
	}, nil
}

// Server holds the HTTP handlers. Its dependencies are read-only or safe
// for concurrent use, so handlers run in parallel without locking.
type Server struct {
	eng   *engine.Engine
	store store.Store
	opts  Options
}

// New creates a Server. st may be nil, in which case the scenario routes
// are not mounted.
func New(eng *engine.Engine, st store.Store, opts Options) *Server {
	return &Server{eng: eng, store: st, opts: opts}
}

// Router builds the chi router with middleware and every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(newClientLimiter(rate.Limit(s.opts.RateLimit), s.opts.Burst).middleware)
		}

		r.Get("/taxonomy", s.handleTaxonomy)
		r.Get("/paths", s.handlePaths)
		r.Get("/paths/{key}", s.handlePath)
		r.Post("/validate", s.handleValidate)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/compare", s.handleCompare)
		r.Get("/viral", s.handleViral)

		if s.store != nil {
			r.Route("/scenarios", func(r chi.Router) {
				r.Get("/", s.handleListScenarios)
				r.Post("/", s.handleCreateScenario)
				r.Get("/{id}", s.handleGetScenario)
				r.Put("/{id}", s.handleUpdateScenario)
				r.Delete("/{id}", s.handleDeleteScenario)
				r.Post("/{id}/run", s.handleRunScenario)
			})
		}
	})

	return r
}
