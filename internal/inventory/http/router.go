package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
	"github.com/aussiebroadwan/stocktake/pkg/httpx"
	"github.com/aussiebroadwan/stocktake/pkg/jwtx"
	"github.com/aussiebroadwan/stocktake/pkg/slogx"

	_ "github.com/aussiebroadwan/stocktake/api/inventory" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker is an optional dependency reported by /readyz.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	UserService      *service.UserService
	SessionService   *service.SessionService
	InventoryService *service.InventoryService

	// Events is checked by /readyz when set.
	Events HealthChecker

	// CookieSecure marks the session cookie Secure.
	CookieSecure bool

	StrictLimit   httpx.RateLimitConfig
	ModerateLimit httpx.RateLimitConfig
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		keys:          keys,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
		StrictLimit:   httpx.StrictLimit,
		ModerateLimit: httpx.ModerateLimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerInventory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Stocktake Inventory API
//	@version		0.1.0
//	@description	Device inventory tracking with per-week device identifiers.
//	@description
//	@description	Sessions are carried in an HttpOnly cookie set by /auth/login.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/stocktake
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						stocktake_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) requireSession() httpx.Middleware {
	return httpx.RequireSession(r.SessionService)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		UserService:    r.UserService,
		SessionService: r.SessionService,
		CookieSecure:   r.CookieSecure,
	}

	// Register and login are limited by IP + email to slow down guessing.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.RateLimitByIPAndJSONField(r.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIPAndJSONField(r.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
}

func (r *Router) registerUsers() {
	h := &ProfileHandler{UserService: r.UserService}

	r.Mux.Handle("GET /user/protected",
		httpx.Chain(h,
			r.requireSession(),
		),
	)
}

func (r *Router) registerInventory() {
	h := &InventoryHandler{InventoryService: r.InventoryService}

	protect := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.requireSession(),
			httpx.RateLimitByUser(r.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /inventory/register", protect(h.Register))
	r.Mux.Handle("GET /inventory/list", protect(h.List))
	r.Mux.Handle("GET /inventory/{fullID}", protect(h.Get))
	r.Mux.Handle("POST /inventory/{fullID}/notes", protect(h.AddNote))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Events))
}
