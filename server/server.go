package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/chronoparse/internal/profile"
	"github.com/hrygo/chronoparse/plugin/datetime"
	ratelimit "github.com/hrygo/chronoparse/server/middleware"
	apiv1 "github.com/hrygo/chronoparse/server/router/api/v1"
)

type Server struct {
	Profile    *profile.Profile
	Recognizer *datetime.Recognizer

	echoServer *echo.Echo
	limiter    *ratelimit.RateLimiter
}

func NewServer(profile *profile.Profile, recognizer *datetime.Recognizer) (*Server, error) {
	s := &Server{
		Profile:    profile,
		Recognizer: recognizer,
		limiter:    ratelimit.NewRateLimiter(profile.RateLimit, profile.RateBurst),
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.BodyLimit(bodyLimit(profile.MaxQueryLength)))
	s.echoServer = echoServer

	// Healthz endpoint.
	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiV1Service, err := apiv1.NewAPIV1Service(profile, recognizer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create api v1 service")
	}
	apiV1Service.RegisterRoutes(echoServer, s.limiter.Middleware())

	return s, nil
}

// bodyLimit leaves room for JSON escaping of a query of maxQuery bytes and
// the other request fields.
func bodyLimit(maxQuery int) string {
	return fmt.Sprintf("%dK", 2*maxQuery/1024+4)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echoServer
}

// Start listens on the profile address and serves until ctx is done or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	s.echoServer.Listener = listener
	slog.Info("server listening", "address", listener.Addr().String(), "culture", s.Profile.Culture)

	errCh := make(chan error, 1)
	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Shutdown(ctx context.Context) {
	slog.Info("server shutting down")
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	slog.Info("server stopped properly")
}
