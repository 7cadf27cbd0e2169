package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/observability/statsd"
	"github.com/antly/antly-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Accounts AccountServiceInterface
	Sessions SessionResolver
	Ads      *service.AdService
	Reviews  *service.ReviewService
	Admin    *service.AdminService
	Cookies  *SessionCookies
	Errors   *ErrorResponder
	// Optional: dependencies checked by /readyz. Nil entries are skipped.
	Ready  map[string]Pinger
	Logger *slog.Logger
	// Metrics receives role-gate rejections. Optional.
	Metrics statsd.Sink
}

// NewRouter creates and configures the API router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	errs := services.Errors
	if errs == nil {
		errs = &ErrorResponder{Logger: services.Logger}
	}
	gate := GateDeps{
		Cookies:  services.Cookies,
		Sessions: services.Sessions,
		Logger:   services.Logger,
		Metrics:  services.Metrics,
	}

	registerAuthRoutes(mux, &AuthHandlers{
		Svc:     services.Accounts,
		Cookies: services.Cookies,
		Errors:  errs,
		Logger:  services.Logger,
	}, gate)
	if services.Ads != nil {
		registerAdRoutes(mux, &AdHandlers{Svc: services.Ads, Errors: errs}, gate)
	}
	if services.Reviews != nil {
		registerReviewRoutes(mux, &ReviewHandlers{Svc: services.Reviews, Errors: errs}, gate)
	}
	if services.Admin != nil {
		registerAdminRoutes(mux, &AdminHandlers{Svc: services.Admin, Errors: errs}, gate)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Ready))
	mux.HandleFunc("/", notFoundHandler)

	return mux
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: ErrCodeNotFound,
		Message: "Not found.",
	})
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, gate GateDeps) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.Handle("GET /api/auth/me", RequireSession(gate)(http.HandlerFunc(h.Me)))
}

func registerAdRoutes(mux *http.ServeMux, h *AdHandlers, gate GateDeps) {
	providerOnly := RequireRole(gate, domainauth.RoleProvider)
	adminOnly := RequireRole(gate, domainauth.RoleAdmin)

	mux.HandleFunc("GET /api/ads", h.ListPublic)
	mux.Handle("GET /api/provider/ads", providerOnly(http.HandlerFunc(h.ListOwn)))
	mux.Handle("POST /api/provider/ads", providerOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/provider/ads/{id}", providerOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/provider/ads/{id}", providerOnly(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /api/admin/ads", adminOnly(http.HandlerFunc(h.ListAll)))
	mux.Handle("PATCH /api/admin/ads/{id}/status", adminOnly(http.HandlerFunc(h.SetStatus)))
}

func registerReviewRoutes(mux *http.ServeMux, h *ReviewHandlers, gate GateDeps) {
	clientOnly := RequireRole(gate, domainauth.RoleClient)
	providerOnly := RequireRole(gate, domainauth.RoleProvider)

	mux.HandleFunc("GET /api/users/{id}/reviews", h.ListForUser)
	mux.Handle("POST /api/client/reviews", clientOnly(http.HandlerFunc(h.CreateByClient)))
	mux.Handle("DELETE /api/client/reviews/{id}", clientOnly(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/provider/reviews", providerOnly(http.HandlerFunc(h.CreateByProvider)))
	mux.Handle("DELETE /api/provider/reviews/{id}", providerOnly(http.HandlerFunc(h.Delete)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, gate GateDeps) {
	mux.Handle("GET /api/admin/users", RequireRole(gate, domainauth.RoleAdmin)(http.HandlerFunc(h.ListUsers)))
}
