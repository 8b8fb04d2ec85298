package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/officehours/internal/profile"
	"github.com/hrygo/officehours/plugin/ai/timeout"
	"github.com/hrygo/officehours/server/middleware"
	apiv1 "github.com/hrygo/officehours/server/router/api/v1"
)

const rateLimitCleanupInterval = 5 * time.Minute

// Server is the officehours HTTP server.
type Server struct {
	Profile    *profile.Profile
	Components *Components

	echoServer  *echo.Echo
	rateLimiter *middleware.RateLimiter

	runnerCancelFuncs []context.CancelFunc
}

// NewServer creates the echo server and registers every route on it.
func NewServer(_ context.Context, profile *profile.Profile, components *Components) (*Server, error) {
	s := &Server{
		Profile:     profile,
		Components:  components,
		rateLimiter: middleware.NewRateLimiter(profile.RateLimitPerSecond, profile.RateLimitBurst),
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.RequestID())
	echoServer.Use(requestLogger())
	echoServer.Use(echomiddleware.CORS())
	echoServer.Use(middleware.RateLimit(s.rateLimiter, "/health", "/metrics"))
	s.echoServer = echoServer

	apiV1Service := apiv1.NewAPIV1Service(profile, components.Office, components.Resolver)
	apiV1Service.RegisterRoutes(echoServer)
	echoServer.GET("/metrics", echo.WrapHandler(components.Metrics.Handler()))

	return s, nil
}

// requestLogger logs one slog line per request.
func requestLogger() echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(context.Background(), level, "http request", attrs...)
			return nil
		},
	})
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", address)
	}
	s.echoServer.Listener = listener

	s.StartBackgroundRunners(ctx)

	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", "error", err)
		}
	}()
	slog.Info("officehours server started", slog.String("address", listener.Addr().String()), slog.String("mode", s.Profile.Mode))
	return nil
}

// StartBackgroundRunners starts the periodic rate limiter cleanup.
func (s *Server) StartBackgroundRunners(ctx context.Context) {
	runnerCtx, cancel := context.WithCancel(ctx)
	s.runnerCancelFuncs = append(s.runnerCancelFuncs, cancel)
	go s.rateLimiter.RunCleanup(runnerCtx, rateLimitCleanupInterval)
}

// Shutdown stops the background runners, drains in-flight requests and
// closes the knowledge store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, timeout.ShutdownTimeout)
	defer cancel()

	slog.Info("server shutting down")

	for _, cancelFunc := range s.runnerCancelFuncs {
		if cancelFunc != nil {
			cancelFunc()
		}
	}

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	if err := s.Components.Close(); err != nil {
		slog.Error("failed to close components", slog.String("error", err.Error()))
	}

	slog.Info("officehours stopped properly")
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echoServer.ServeHTTP(w, r)
}
