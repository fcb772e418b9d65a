package http

import (
	"log/slog"
	"net/http"

	"eventscheduler/internal/access"
	"eventscheduler/internal/delivery/http/controllers"
	"eventscheduler/internal/delivery/http/middleware"
	"eventscheduler/internal/domain"
	"eventscheduler/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries everything NewRouter wires together. Metrics may be nil.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	Metrics        *metrics.Metrics
	AllowedOrigins []string

	Auth        *controllers.AuthController
	Categories  *controllers.CategoryController
	Slots       *controllers.SlotController
	Preferences *controllers.PreferenceController
	Users       *controllers.UserController
	Health      *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in the middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	tokenless := make(map[string]bool)
	guard := func(pattern string, op access.Operation, fn http.HandlerFunc) {
		if access.IgnoresToken(op) {
			tokenless[pattern] = true
		}
		mux.HandleFunc(pattern, middleware.RequireAccess(op)(fn))
	}

	// Auth
	guard("POST /api/register", access.Register, cfg.Auth.Register)
	guard("POST /api/token", access.ObtainToken, cfg.Auth.ObtainToken)
	guard("POST /api/token/refresh", access.RefreshToken, cfg.Auth.RefreshToken)

	// Categories
	guard("GET /api/categories", access.ListCategories, cfg.Categories.List)
	guard("POST /api/categories", access.CreateCategory, cfg.Categories.Create)
	guard("PUT /api/categories/{id}", access.UpdateCategory, cfg.Categories.Update)
	guard("DELETE /api/categories/{id}", access.DeleteCategory, cfg.Categories.Delete)

	// Slots
	guard("GET /api/slots", access.ListSlots, cfg.Slots.List)
	guard("POST /api/slots", access.CreateSlot, cfg.Slots.Create)
	guard("GET /api/slots/{id}", access.RetrieveSlot, cfg.Slots.Get)
	guard("PUT /api/slots/{id}", access.UpdateSlot, cfg.Slots.Update)
	guard("PATCH /api/slots/{id}", access.UpdateSlot, cfg.Slots.Patch)
	guard("DELETE /api/slots/{id}", access.DeleteSlot, cfg.Slots.Delete)
	guard("POST /api/slots/{id}/book", access.BookSlot, cfg.Slots.Book)
	guard("POST /api/slots/{id}/unsubscribe", access.UnsubscribeSlot, cfg.Slots.Unsubscribe)

	// Preferences
	guard("GET /api/preferences", access.ReadPreferences, cfg.Preferences.Get)
	guard("PUT /api/preferences", access.EditPreferences, cfg.Preferences.Update)
	guard("PATCH /api/preferences", access.EditPreferences, cfg.Preferences.Update)
	guard("DELETE /api/preferences/categories", access.EditPreferences, cfg.Preferences.Clear)

	// Users
	guard("GET /api/users", access.ListUsers, cfg.Users.List)
	guard("GET /api/users/{id}", access.RetrieveUser, cfg.Users.Get)

	// Ops
	if cfg.Health != nil {
		mux.HandleFunc("GET /healthz", cfg.Health.Health)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	skipAuth := func(r *http.Request) bool {
		_, pattern := mux.Handler(r)
		return tokenless[pattern]
	}

	var handler http.Handler = middleware.Authenticate(cfg.Verifier, skipAuth, mux)
	handler = middleware.Recovery(cfg.Logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	if cfg.Metrics != nil {
		handler = middleware.Metrics(cfg.Metrics, mux, handler)
	}
	return handler
}
