package handlers

import (
	"net/http"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/config"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/middleware"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/realtime"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *store.Store
	Auth   *services.AuthService
	AI     *services.AIService
	Hub    *realtime.Hub
}

func public(next http.Handler) http.Handler { return next }

// NewRouter builds the full HTTP surface: REST API, WebSocket channel and
// optional static frontend.
func NewRouter(d Deps) http.Handler {
	sugar := d.Logger.Sugar()
	requireAuth := middleware.RequireAuth(d.Auth, sugar)

	incidents := NewIncidentHandler(d.Store, d.Hub, sugar)
	callLogs := NewCallLogHandler(d.Store, sugar)
	alerts := NewAlertHandler(d.Store, d.Hub, sugar)
	trends := NewSocialTrendHandler(d.Store, sugar)
	plans := NewResponsePlanHandler(d.Store, sugar)
	users := NewUserHandler(d.Store, d.Auth, sugar)
	authHandler := NewAuthHandler(d.Auth, d.Config.CookieSecure, sugar)
	statsHandler := NewStatsHandler(services.NewStatsService(d.Store))
	aiHandler := NewAIHandler(d.AI, sugar)
	healthHandler := NewHealthHandler(d.Auth.Sessions(), d.Hub, sugar)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Real-time channel, outside the request timeout
	r.Get("/ws", d.Hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		// the AI timeout has its own deadline inside the service
		r.Use(chimw.Timeout(d.Config.AITimeout + 15*time.Second))

		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
			r.Get("/status", authHandler.Status)
		})

		r.Route("/incidents", func(r chi.Router) { incidents.Routes(r, public, requireAuth) })
		r.Route("/call-logs", func(r chi.Router) { callLogs.Routes(r, public, requireAuth) })
		r.Route("/alerts", func(r chi.Router) { alerts.Routes(r, public, requireAuth) })
		r.Route("/social-trends", func(r chi.Router) { trends.Routes(r, public, requireAuth) })
		r.Route("/response-plans", func(r chi.Router) { plans.Routes(r, public, requireAuth) })
		r.Route("/users", func(r chi.Router) { users.Routes(r, requireAuth) })

		r.Get("/stats", statsHandler.Get)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/chat", aiHandler.Chat)
			r.Post("/analyze", aiHandler.Analyze)
			r.Post("/recommend", aiHandler.Recommend)
			r.Post("/analyze-trends", aiHandler.AnalyzeTrends)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "Not found")
		})
	})

	// Serve static files (frontend build)
	if d.Config.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(d.Config.StaticDir)))
	}

	return r
}
