package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/esg-data-management/app"
	"github.com/upb/esg-data-management/handlers"
	appmiddleware "github.com/upb/esg-data-management/middleware"
	"github.com/upb/esg-data-management/utils"
)

const apiPrefix = "/api/v1"

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmiddleware.RequestLogger(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.Config.Server.RequestTimeout))
	r.Use(middleware.StripSlashes)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)
	if deps.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.HTTPMetrics.Handler())
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, apiPrefix+"/", http.StatusFound)
	})

	// API v1 routes
	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/", handlers.APIRoot(apiPrefix))

		// Token endpoints are public
		r.Route("/token", func(r chi.Router) {
			r.Post("/", deps.AuthHandler.HandleObtain)
			r.Post("/refresh", deps.AuthHandler.HandleRefresh)
			r.Post("/verify", deps.AuthHandler.HandleVerify)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)

			r.Route("/companies", func(r chi.Router) {
				h := deps.CompanyHandler
				r.Get("/", h.HandleList)
				r.Post("/", h.HandleCreate)
				r.Get("/{id}", h.HandleGet)
				r.Put("/{id}", h.HandleUpdate)
				r.Patch("/{id}", h.HandlePatch)
				r.Delete("/{id}", h.HandleDelete)
				r.Get("/{id}/esg-summary", h.HandleSummary)
			})

			r.Route("/business-units", func(r chi.Router) {
				h := deps.BusinessUnitHandler
				r.Get("/", h.HandleList)
				r.Post("/", h.HandleCreate)
				r.Get("/{id}", h.HandleGet)
				r.Put("/{id}", h.HandleUpdate)
				r.Patch("/{id}", h.HandlePatch)
				r.Delete("/{id}", h.HandleDelete)
			})

			r.Route("/metrics", func(r chi.Router) {
				h := deps.MetricHandler
				r.Get("/", h.HandleList)
				r.Post("/", h.HandleCreate)
				r.Get("/{id}", h.HandleGet)
				r.Put("/{id}", h.HandleUpdate)
				r.Patch("/{id}", h.HandlePatch)
				r.Delete("/{id}", h.HandleDelete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
