package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/middleware"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterDeps struct {
	JWTService     jwt.Service
	DeviceService  device.Service
	Dashboard      DashboardHandler
	Member         MemberHandler
	Group          GroupHandler
	Attendance     AttendanceHandler
	Leave          LeaveHandler
	Notification   NotificationHandler
	Device         DeviceHandler
	AllowedOrigins []string
	Environment    string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absensi"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-ID", "X-Device-Secret"},
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

		// Attendance terminals authenticate with device credentials
		r.Group(func(r chi.Router) {
			r.Use(middleware.DeviceAuth(deps.DeviceService))
			r.Post("/device/attendance/swipe", deps.Attendance.CardCheckIn)
		})

		// Token-less SSE stream, guarded by its own short-lived token
		r.Get("/notifications/stream", deps.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", deps.Dashboard.GetStats)
				r.Get("/monthly-trend", deps.Dashboard.GetMonthlyTrend)
				r.Get("/group-comparison", deps.Dashboard.GetGroupComparison)
				r.Get("/attendance-groups", deps.Dashboard.GetAttendanceGroups)
				r.Get("/today-summary", deps.Dashboard.GetTodaySummary)
			})

			r.Route("/members", func(r chi.Router) {
				r.Get("/", deps.Member.List)
				r.Post("/", deps.Member.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Member.GetByID)
					r.Put("/", deps.Member.Update)
					r.Delete("/", deps.Member.Deactivate)
					r.Get("/cards", deps.Device.ListMemberCards)
				})
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", deps.Group.List)
				r.Post("/", deps.Group.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Group.GetByID)
					r.Put("/", deps.Group.Update)
					r.Delete("/", deps.Group.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", deps.Attendance.List)
				r.Post("/", deps.Attendance.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Attendance.GetByID)
					r.Post("/validate", deps.Attendance.Validate)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", deps.Leave.List)
				r.Post("/", deps.Leave.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", deps.Leave.GetByID)
					r.Post("/review", deps.Leave.Review)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", deps.Notification.List)
				r.Get("/unread-count", deps.Notification.UnreadCount)
				r.Post("/stream-token", deps.Notification.GetStreamToken)
				r.Post("/{id}/read", deps.Notification.MarkAsRead)
			})

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", deps.Device.List)
				r.Post("/", deps.Device.Register)
			})

			r.Route("/cards", func(r chi.Router) {
				r.Post("/", deps.Device.AssignCard)
				r.Delete("/{id}", deps.Device.RevokeCard)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
