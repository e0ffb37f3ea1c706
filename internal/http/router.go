package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/teamhq/userauth/internal/service"
	"github.com/teamhq/userauth/internal/store"
	"github.com/teamhq/userauth/pkg/httpx"
	"github.com/teamhq/userauth/pkg/jwtx"
	"github.com/teamhq/userauth/pkg/slogx"

	_ "github.com/teamhq/userauth/api/docs" // Swagger docs
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	requestTimeout time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Global middleware chain: access logging, permissive CORS (the API is
	// consumed cross-origin by the admin frontend), request deadline.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
	})
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		corsHandler.Handler,
		httpx.WithTimeout(requestTimeout),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			User Authentication Service API
//	@version		0.1.0
//	@description	Minimal user-authentication backend: login, profile fetch, account
//	@description	management and password changes, guarded by HS256 bearer tokens.
//
//	@BasePath					/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerPasswords()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Anything unrouted, including the bare root, is deliberately
	// forbidden rather than 404 to avoid exposing an unrouted surface.
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Access via this method is forbidden.", http.StatusForbidden)
	})
}

func (r *Router) registerUsers() {
	r.Mux.Handle("POST /api/user/login", &LoginHandler{AuthService: r.AuthService})

	r.Mux.Handle("GET /api/user/me", httpx.Chain(&MeHandler{},
		httpx.AuthnMiddleware(r.verifier),
	))

	// Account creation and deletion are admin operations.
	r.Mux.Handle("POST /api/user/create", httpx.Chain(&CreateHandler{UserService: r.UserService},
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
	))
	r.Mux.Handle("POST /api/user/delete", httpx.Chain(&DeleteHandler{UserService: r.UserService},
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
	))

	// Update enforces admin-or-self in the handler, where the target id
	// is known.
	r.Mux.Handle("POST /api/user/update", httpx.Chain(&UpdateHandler{UserService: r.UserService},
		httpx.AuthnMiddleware(r.verifier),
	))
}

func (r *Router) registerPasswords() {
	h := &PasswordHandler{UserService: r.UserService}

	// Change enforces admin-or-self in the handler.
	r.Mux.Handle("POST /api/user/password/change", httpx.Chain(http.HandlerFunc(h.HandleChange),
		httpx.AuthnMiddleware(r.verifier),
	))

	// Reset hands out a fresh plaintext once, so it stays admin-only.
	r.Mux.Handle("POST /api/user/password/reset", httpx.Chain(http.HandlerFunc(h.HandleReset),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
	))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
