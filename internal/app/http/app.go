package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"spotguide/internal/lib/logger/sl"
	appmw "spotguide/internal/middleware"
	httprouters "spotguide/internal/transport/http"
	"spotguide/internal/transport/http/dto/response"

	"github.com/arl/statsviz"
	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type Config struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
	JWTSecret       string
	AdminRole       string
	UploadsDir      string
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	cfg     Config
}

func New(log *slog.Logger, cfg Config, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = httprouters.NewValidator()

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, sl.Err(v.Error))
			}

			log.Info("request", attrs...)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Warn("statsviz not registered", sl.Err(err))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		cfg:     cfg,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "httpapp.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "httpapp.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "httpapp.Server.Stop"

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	if s.cfg.UploadsDir != "" {
		s.e.Static("/uploads", s.cfg.UploadsDir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.e.Group("/api/v1")
	{
		api.GET("/temporary-spots", s.routers.ListPublishedSpots)
		api.GET("/temporary-spots/:slug", s.routers.GetPublishedSpot)
		api.GET("/geocode/reverse", s.routers.ReverseGeocode)
	}

	admin := api.Group("/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.cfg.JWTSecret),
		ContextKey: appmw.ContextKeyUser,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("authentication required", err.Error()))
		},
	}))
	admin.Use(appmw.RequireRole(s.cfg.AdminRole))
	{
		admin.GET("/photos", s.routers.ListPhotos)
		admin.POST("/photos", s.routers.CreatePhoto)
		admin.PATCH("/photos", s.routers.UpdatePhoto)
		admin.DELETE("/photos", s.routers.DeletePhoto)
		admin.POST("/photos/:id/assign", s.routers.AssignPhoto)

		admin.GET("/temporary-spots", s.routers.ListSpots)
		admin.POST("/temporary-spots", s.routers.CreateSpot)
		admin.GET("/temporary-spots/:id", s.routers.GetSpot)
		admin.PATCH("/temporary-spots/:id", s.routers.UpdateSpot)
		admin.DELETE("/temporary-spots/:id", s.routers.DeleteSpot)
		admin.POST("/temporary-spots/:id/status", s.routers.SetSpotStatus)
	}
}
