package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the process settings the router needs
type RouterConfig struct {
	Env         string
	Version     string
	FrontendURL string
	LogLevel    slog.Level
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	timeHandler TimeHandler,
	attendanceHandler AttendanceHandler,
	taskHandler TaskHandler,
	calendarHandler CalendarHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.LogLevel,
	})).With(
		slog.String("app", "hris-portal"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Clock; the stream also reads the token from ?token
		r.Route("/time", func(r chi.Router) {
			r.Get("/", timeHandler.Now)
			r.Get("/convert", timeHandler.Convert)
			r.With(jwtauth.Verify(JWTService.JWTAuth(), middleware.TokenFromQuery, jwtauth.TokenFromHeader)).
				Get("/stream", timeHandler.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/my-dashboard", dashboardHandler.GetDashboard)
			r.Get("/calendar", calendarHandler.Month)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/history", attendanceHandler.History)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).
					Get("/{id}/debug", attendanceHandler.Debug)
			})

			r.Route("/my-tasks", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTaskViewOwn))
				r.Get("/", taskHandler.ListMine)
				r.Get("/summary", taskHandler.MySummary)
				r.Get("/{id}", taskHandler.GetMine)
				r.With(middleware.RequirePermission(user.PermissionTaskSubmit)).
					Post("/{id}/submissions", taskHandler.SubmitProgress)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.With(middleware.RequirePermission(user.PermissionTaskViewAll)).Get("/", taskHandler.List)
				r.With(middleware.RequirePermission(user.PermissionTaskAssign)).Post("/", taskHandler.Assign)
				r.With(middleware.RequirePermission(user.PermissionTaskViewAll)).Get("/analytics", taskHandler.Analytics)
				r.With(middleware.RequirePermission(user.PermissionTaskReview)).Get("/submissions", taskHandler.ListSubmissions)
				r.With(middleware.RequirePermission(user.PermissionTaskReview)).
					Post("/submissions/{id}/review", taskHandler.Review)
			})
		})
	})
	return r
}
