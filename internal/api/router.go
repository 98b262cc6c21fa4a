package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskyhq/tasky-be/internal/api/handlers"
	"github.com/taskyhq/tasky-be/internal/api/middleware"
	"github.com/taskyhq/tasky-be/internal/auth"
	"github.com/taskyhq/tasky-be/internal/config"
	"github.com/taskyhq/tasky-be/internal/services"
	"github.com/taskyhq/tasky-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, hub *websocket.Hub,
	userService services.UserServiceProvider,
	taskService services.TaskServiceProvider,
	activityService services.ActivityServiceProvider) *chi.Mux {

	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.MaxAvatarBytes)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	activityHandler := handlers.NewActivityHandler(activityService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("TaskY API is running. Use /api/v1 for API endpoints."))
	})
	r.Handle("/metrics", middleware.MetricsHandler())

	// Uploaded avatars are served as static assets.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Notification socket authenticates via query token.
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(auth.JWTMiddleware())
				r.Patch("/password", authHandler.ChangePassword)
				r.Patch("/avatar", authHandler.UploadAvatar)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Get("/", userHandler.GetMe)
			r.Patch("/", userHandler.Update)
			r.Patch("/avatar", authHandler.UploadAvatar)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Patch("/restore/{id}", taskHandler.Restore)
			r.Patch("/complete/{id}", taskHandler.Complete)
			r.Patch("/incomplete/{id}", taskHandler.Incomplete)
			r.Delete("/hard-delete/{id}", taskHandler.HardDelete)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Patch("/", taskHandler.Update)
				r.Delete("/", taskHandler.SoftDelete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Get("/activity", activityHandler.GetRecent)
		})
	})

	return r
}
