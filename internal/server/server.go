// Package server assembles the HTTP handler from the feature modules.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/auth"
	"github.com/clubdesk/matchday/internal/config"
	contactRouter "github.com/clubdesk/matchday/internal/contact/router"
	"github.com/clubdesk/matchday/internal/health"
	"github.com/clubdesk/matchday/internal/live"
	matchRouter "github.com/clubdesk/matchday/internal/match/router"
	"github.com/clubdesk/matchday/internal/middleware"
	playerRouter "github.com/clubdesk/matchday/internal/player/router"
	statisticsRouter "github.com/clubdesk/matchday/internal/statistics/router"
	teamRouter "github.com/clubdesk/matchday/internal/team/router"
	userRouter "github.com/clubdesk/matchday/internal/user/router"
	userService "github.com/clubdesk/matchday/internal/user/service"
)

// Deps are the long-lived components shared by the routes.
type Deps struct {
	DB       *gorm.DB
	Sessions auth.SessionLoader
	Users    userService.Service
	Hub      *live.Hub
	Checks   []health.Check
	Logger   *zap.SugaredLogger
}

// NewRouter returns the gin engine serving /health and /api.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		auth.Authenticate(deps.Sessions, cfg.Session.CookieName, deps.Logger),
	)

	r.GET("/health", health.New(deps.Logger, deps.Checks...).Check)

	api := r.Group("/api")
	userRouter.RegisterRoutes(api, deps.Users, cfg.Session, deps.Logger)
	teamRouter.RegisterRoutes(api, deps.DB, deps.Logger)
	playerRouter.RegisterRoutes(api, deps.DB, deps.Logger)
	matchRouter.RegisterRoutes(api, deps.DB, deps.Hub, deps.Logger)
	statisticsRouter.RegisterRoutes(api, deps.DB, deps.Logger)
	contactRouter.RegisterRoutes(api, deps.DB, deps.Logger)

	return r
}

// WithCORS wraps h with the configured cross-origin policy. Credentials are
// allowed so the session cookie reaches the API from the browser client.
func WithCORS(cfg config.CORSConfig, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		Debug:            cfg.Debug,
	}).Handler(h)
}

// New returns the http.Server for cfg.Server.
func New(cfg config.Config, deps Deps) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      WithCORS(cfg.CORS, NewRouter(cfg, deps)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
