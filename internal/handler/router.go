package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/revolck-lab/api-advancemais-sub001/internal/auth"
	"github.com/revolck-lab/api-advancemais-sub001/internal/domain"
	"github.com/revolck-lab/api-advancemais-sub001/internal/service"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/health"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/middleware"
)

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Logger         *slog.Logger
	ServiceName    string
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string

	Auth          *AuthHandler
	Jobs          *JobHandler
	Subscriptions *SubscriptionHandler
	Content       *ContentHandler

	AuthService *service.AuthService
	Health      *health.Handler

	// LevelPolicy decides how role levels gate protected routes. Defaults to
	// the exact-match rule.
	LevelPolicy auth.LevelPolicy
}

// NewRouter mounts all routes. Protected routes are gated by role level with
// the exact-match policy: each route serves the one role level it names, and
// higher levels are not accepted.
func NewRouter(cfg RouterConfig) chi.Router {
	policy := cfg.LevelPolicy
	if policy == nil {
		policy = auth.ExactLevel
	}

	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(CORS(cfg.AllowedOrigins))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	authenticate := middleware.Auth(tokenValidator(cfg.AuthService))

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes carry per-IP rate limiting against credential
		// stuffing and registration abuse.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			r.Post("/auth/login", cfg.Auth.Login)
			r.Post("/auth/register", cfg.Auth.RegisterUser)
			r.Post("/auth/register-company", cfg.Auth.RegisterCompany)
		})

		// Public reads.
		r.Get("/jobs", cfg.Jobs.List)
		r.Get("/jobs/{id}", cfg.Jobs.Get)
		r.Get("/plans", cfg.Subscriptions.ListPlans)
		r.Get("/banners", cfg.Content.ListBanners)

		// Any authenticated principal.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/auth/me", cfg.Auth.Me)
		})

		// Company-level routes.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireLevel(policy, domain.LevelEmpresa))
			r.Post("/company/jobs", cfg.Jobs.Create)
			r.Get("/company/jobs", cfg.Jobs.ListMine)
			r.Delete("/company/jobs/{id}", cfg.Jobs.Disable)
			r.Get("/company/subscription", cfg.Subscriptions.Get)
			r.Post("/company/subscription", cfg.Subscriptions.Subscribe)
			r.Put("/company/subscription", cfg.Subscriptions.ChangePlan)
		})

		// Administrator-level routes.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireLevel(policy, domain.LevelAdministrador))
			r.Post("/auth/users", cfg.Auth.CreateUser)
			r.Post("/banners", cfg.Content.CreateBanner)
			r.Put("/banners/{id}", cfg.Content.UpdateBanner)
			r.Delete("/banners/{id}", cfg.Content.DeleteBanner)
		})
	})

	return r
}

// tokenValidator adapts the auth service's claims to the transport-level
// claims the middleware carries.
func tokenValidator(svc *service.AuthService) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, bool) {
		claims, ok := svc.VerifyToken(token)
		if !ok {
			return nil, false
		}
		return &middleware.Claims{
			PrincipalID: claims.PrincipalID,
			Email:       claims.Email,
			Name:        claims.Name,
			RoleID:      claims.Role.ID,
			RoleName:    claims.Role.Name,
			RoleLevel:   claims.Role.Level,
			IsCompany:   claims.IsCompany,
			CompanyID:   claims.CompanyID,
		}, true
	}
}
