package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ahm0xc/somossa-bot/internal/config"
	"github.com/ahm0xc/somossa-bot/internal/handler"
	"github.com/ahm0xc/somossa-bot/internal/response"
)

// Server holds the Echo app and its dependencies.
type Server struct {
	Echo   *echo.Echo
	Config *config.Config
}

// New builds the Echo server and registers routes. The gateway is
// injected so tests can substitute a fake for the Discord session.
func New(cfg *config.Config, gw handler.Gateway, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(
		middleware.Recover(),
		middleware.Logger(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		// Every route, /health included, requires the shared bearer
		// secret. Enforced before routing so an unauthenticated body is
		// never parsed.
		middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			Validator: func(key string, c echo.Context) (bool, error) {
				return subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AuthToken)) == 1, nil
			},
			ErrorHandler: func(err error, c echo.Context) error {
				return response.Error(c, http.StatusUnauthorized, "invalid or missing bearer token")
			},
		}),
	)

	relay := &handler.Relay{
		Gateway:           gw,
		ErrorChannelID:    cfg.ErrorChannelID,
		FeedbackChannelID: cfg.FeedbackChannelID,
		SendTimeout:       time.Duration(cfg.SendTimeout) * time.Second,
		Log:               log,
	}

	e.GET("/health", relay.HandleHealth)
	e.POST("/log", relay.HandleLog)
	e.POST("/feedback", relay.HandleFeedback)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{Echo: e, Config: cfg}
}

// Start starts the HTTP server. Blocks until the context is cancelled
// or the server fails; on cancel the server is shut down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.Shutdown(context.Background())
	}()
	return s.Echo.Start(fmt.Sprintf(":%d", s.Config.Port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
