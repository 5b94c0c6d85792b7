// Package server hosts the HTTP API and the gRPC health endpoint.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/fekuna/goldsmith-catalog-service/config"
	_ "github.com/fekuna/goldsmith-catalog-service/docs"
	"github.com/fekuna/goldsmith-catalog-service/internal/httpx"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/fekuna/goldsmith-catalog-service/pkg/metrics"
	"github.com/fekuna/goldsmith-catalog-service/pkg/middleware"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Routes is implemented by every HTTP handler mounted under /api.
type Routes interface {
	Register(g *echo.Group)
}

type Server struct {
	cfg    *config.Config
	echo   *echo.Echo
	grpc   *grpc.Server
	health *health.Server
	logger logger.ZapLogger
}

func New(cfg *config.Config, log logger.ZapLogger, routes ...Routes) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.ErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.RequestLogger(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	for _, r := range routes {
		r.Register(api)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		cfg:    cfg,
		echo:   e,
		grpc:   grpcServer,
		health: healthServer,
		logger: log,
	}
}

// Handler exposes the HTTP router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves HTTP and gRPC until ctx is cancelled or either listener fails,
// then drains both within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", normalizePort(s.cfg.Server.GRPCPort))
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	go func() {
		s.logger.Info("Starting gRPC health server", zap.String("port", s.cfg.Server.GRPCPort))
		if err := s.grpc.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	go func() {
		s.logger.Info("Starting HTTP server", zap.String("port", s.cfg.Server.HTTPPort))
		if err := s.echo.Start(normalizePort(s.cfg.Server.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		s.logger.Error("server failed", zap.Error(runErr))
	}

	s.logger.Info("Shutting down server...")
	s.health.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	s.grpc.GracefulStop()

	s.logger.Info("Server stopped")
	return runErr
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
