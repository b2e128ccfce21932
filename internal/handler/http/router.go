package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

type Handlers struct {
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Hours      HoursHandler
	Settings   SettingsHandler
	Employee   EmployeeHandler
}

// NewLogger builds the JSON logger with ECS field names used by the
// request logger and the rest of the process.
func NewLogger(env, version string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("version", version),
		slog.String("env", env),
	)
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired)

			r.Route("/time-records", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/", h.Attendance.Punch)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/", h.Attendance.ListMine)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDashboardView))
					r.Get("/dashboard", h.Dashboard.GetDashboard)
					r.Get("/time-records/stream", h.Attendance.Stream)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHoursReprocess))
					r.Post("/reprocess-hours", h.Hours.Reprocess)
					r.Get("/reprocess-logs", h.Hours.ListLogs)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
				r.Get("/", h.Settings.Get)
				r.Patch("/", h.Settings.Update)

				// Admin only
				r.With(middleware.AdminOnly).Post("/reload", h.Settings.Reload)
			})

			r.Route("/employees/{id}", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOverrideGrant))
					r.Post("/punch-override", h.Employee.SetPunchOverride)
					r.Delete("/punch-override", h.Employee.ClearPunchOverride)
				})

				r.With(middleware.RequirePermission(user.PermissionLunchManage)).Patch("/lunch", h.Employee.UpdateLunch)
			})
		})
	})
	return r
}
