package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	JWTService          jwt.Service
	AuthHandler         AuthHandler
	AttendanceHandler   AttendanceHandler
	ReportHandler       ReportHandler
	SettingsHandler     SettingsHandler
	ScheduleHandler     ScheduleHandler
	NotificationHandler NotificationHandler
	AllowedOrigins      []string
	Env                 string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftwise-workforce"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// The SSE stream authenticates with its own short-lived token.
		r.Get("/notifications/stream", cfg.NotificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(cfg.JWTService))

			r.Post("/auth/logout", cfg.AuthHandler.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/actions", cfg.AttendanceHandler.SubmitAction)
				r.Get("/{id}", cfg.AttendanceHandler.Get)

				// Manager tier only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagerTier)
					r.Get("/", cfg.AttendanceHandler.List)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManagerTier)
				r.Post("/attendance", cfg.ReportHandler.GenerateAttendanceReport)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/attendance", cfg.SettingsHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/attendance", cfg.SettingsHandler.Update)
				})
			})

			r.Route("/shift-assignments", func(r chi.Router) {
				r.Get("/", cfg.ScheduleHandler.ListAssignments)
				r.Get("/{id}", cfg.ScheduleHandler.GetAssignment)

				// Manager tier only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManagerTier)
					r.Post("/", cfg.ScheduleHandler.CreateAssignment)
				})
			})

			r.Get("/notifications/stream-token", cfg.NotificationHandler.GetStreamToken)
		})
	})

	return r
}
