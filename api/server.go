// Package api - Thin HTTP layer over the quoting and planning service.
// The API is ONLY responsible for: input binding, validation, output serialization.
// The API NEVER performs pricing or routing logic.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cleanplan/core/engine"
	"cleanplan/core/types"
	"cleanplan/internal/logging"
)

// Service is the engine surface the API depends on
type Service interface {
	Quote(ctx context.Context, req *types.QuoteRequest) (*types.QuoteResponse, error)
	Plan(ctx context.Context, req *types.PlanRequest) (*types.PlanResponse, error)
	PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error)
	CityRules(ctx context.Context) ([]types.CityRule, error)
}

func init() {
	// amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// ShutdownTimeout bounds graceful shutdown in Run
const ShutdownTimeout = 5 * time.Second

// Options configures a Server
type Options struct {
	// Version is reported by /health and /version
	Version string

	// AllowedOrigins enables CORS for these origins
	AllowedOrigins []string

	// Logger defaults to the global logger
	Logger *zap.Logger
}

// Server is the API server
type Server struct {
	echo    *echo.Echo
	handler *Handler
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(svc Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Named("api")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = httpErrorHandler(logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			r := c.Request()
			c.SetRequest(r.WithContext(engine.WithRequestID(r.Context(), id)))
		},
	}))
	e.Use(requestLogger(logger))
	e.Use(recoverPanics(logger))
	if len(opts.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
		}))
	}

	s := &Server{
		echo:    e,
		handler: NewHandler(svc, opts.Version),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handler.Health)
	s.echo.GET("/version", s.handler.Version)

	v1 := s.echo.Group("/api/v1")

	pricing := v1.Group("/pricing")
	pricing.POST("/calculate", s.handler.CalculatePrice)
	pricing.GET("/settings", s.handler.PricingSettings)
	pricing.GET("/cities", s.handler.CityRules)

	planning := v1.Group("/planning")
	planning.POST("/auto", s.handler.PlanRoute)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests for up to ShutdownTimeout
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// requestValidator adapts validator to echo.Validator
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("request", fields...)
			return nil
		},
	})
}
