package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"osoc-selections-backend/internal/config"
	"osoc-selections-backend/internal/handler"
	"osoc-selections-backend/internal/metrics"
	"osoc-selections-backend/internal/middleware"
)

type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Edition *handler.EditionHandler
	Student *handler.StudentHandler
	Project *handler.ProjectHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(m.Instrument)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/register", h.Auth.Register)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			auth.With(authMiddleware.RequireAuth).Put("/password", h.User.ChangePassword)
		})

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Get("/users", h.User.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Put("/users/{user_id}/role", h.User.SetRole)

		api.With(authMiddleware.RequireAuth).Get("/editions", h.Edition.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/editions", h.Edition.Create)

		api.With(authMiddleware.RequireAuth).Get("/students", h.Student.List)
		api.With(authMiddleware.RequireAuth).Get("/students/{student_id}", h.Student.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("coach", "admin")).Post("/students", h.Student.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("coach", "admin")).Patch("/students/{student_id}/status", h.Student.UpdateStatus)

		api.With(authMiddleware.RequireAuth).Get("/projects", h.Project.List)
		api.With(authMiddleware.RequireAuth).Get("/projects/{project_id}", h.Project.Get)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/projects", h.Project.Create)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("coach", "admin")).Post("/projects/{project_id}/assignments", h.Project.Assign)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("coach", "admin")).Delete("/projects/{project_id}/assignments/{student_id}", h.Project.Unassign)
	})

	return r
}
