// Package engine provides the API-primary quoting and planning service.
// CLI and HTTP are thin wrappers around this service.
package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cleanplan/core/planning"
	"cleanplan/core/pricing"
	"cleanplan/core/types"
	"cleanplan/internal/errors"
	"cleanplan/internal/logging"
)

// Source supplies the data the service reads per request
type Source interface {
	PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error)
	CityRules(ctx context.Context) ([]types.CityRule, error)
	Customers(ctx context.Context) ([]types.Customer, error)
}

// RateSnapshotter is implemented by sources that read the rate table and
// city rules together. Quote prefers it over two independent reads.
type RateSnapshotter interface {
	RateSnapshot(ctx context.Context) (*types.PricingConfiguration, []types.CityRule, error)
}

// Options configures a Service
type Options struct {
	// Mode is the pricing mode (permissive by default)
	Mode pricing.Mode

	// AverageSpeedKmh is the planning travel speed (30 by default)
	AverageSpeedKmh float64

	// Logger defaults to the global logger
	Logger *zap.Logger
}

// Service loads rate tables or customers per request and hands them to
// the pure pricing and planning cores. Rate tables come from one
// snapshot when the source implements RateSnapshotter.
type Service struct {
	source  Source
	pricer  *pricing.Engine
	planner *planning.Planner
	logger  *zap.Logger
}

// NewService creates a service over source
func NewService(source Source, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Named("engine")
	}
	return &Service{
		source:  source,
		pricer:  pricing.NewEngine(opts.Mode),
		planner: planning.NewPlanner(opts.AverageSpeedKmh),
		logger:  logger,
	}
}

// Mode returns the pricing mode
func (s *Service) Mode() pricing.Mode {
	return s.pricer.Mode()
}

// Quote prices req against the current rate table and city rules
func (s *Service) Quote(ctx context.Context, req *types.QuoteRequest) (*types.QuoteResponse, error) {
	if req == nil {
		return nil, errors.Input("quote request is required")
	}
	ctx, requestID := ensureRequestID(ctx)
	log := s.logger.With(zap.String("request_id", requestID))

	cfg, rules, err := s.rateSnapshot(ctx)
	if err != nil {
		log.Error("quote inputs unavailable", zap.Error(err))
		return nil, err
	}

	resp, err := s.pricer.Quote(req, cfg, rules)
	if err != nil {
		log.Warn("quote rejected",
			zap.String("category", req.Category.String()),
			zap.String("city", req.City),
			zap.Error(err),
		)
		return nil, err
	}

	fields := []zap.Field{
		zap.String("category", req.Category.String()),
		zap.String("city", req.City),
		zap.String("total", resp.TotalPrice.StringFixed(2)),
	}
	if warnings, ok := resp.Details[types.DetailConfigWarnings].([]string); ok {
		log.Warn("quote priced with configuration gaps", append(fields, zap.Strings("gaps", warnings))...)
	} else {
		log.Debug("quote priced", fields...)
	}
	return resp, nil
}

// rateSnapshot loads the rate table and city rules for one quote. Sources
// without RateSnapshot are read concurrently and may mix versions if the
// data changes between the two reads.
func (s *Service) rateSnapshot(ctx context.Context) (*types.PricingConfiguration, []types.CityRule, error) {
	if snap, ok := s.source.(RateSnapshotter); ok {
		cfg, rules, err := snap.RateSnapshot(ctx)
		if err != nil {
			return nil, nil, storageError("load rate snapshot", err)
		}
		return cfg, rules, nil
	}

	var (
		cfg   *types.PricingConfiguration
		rules []types.CityRule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cfg, err = s.source.PricingConfiguration(gctx)
		return storageError("load pricing configuration", err)
	})
	g.Go(func() error {
		var err error
		rules, err = s.source.CityRules(gctx)
		return storageError("load city rules", err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cfg, rules, nil
}

// Plan orders the matching customers for req and estimates the day
func (s *Service) Plan(ctx context.Context, req *types.PlanRequest) (*types.PlanResponse, error) {
	if req == nil {
		return nil, errors.Input("plan request is required")
	}
	ctx, requestID := ensureRequestID(ctx)
	log := s.logger.With(zap.String("request_id", requestID))

	customers, err := s.source.Customers(ctx)
	if err != nil {
		err = storageError("load customers", err)
		log.Error("customers unavailable", zap.Error(err))
		return nil, err
	}

	resp := s.planner.Plan(customers, req)

	log.Info("route planned",
		zap.String("date", req.Date),
		zap.String("employee_id", req.EmployeeID),
		zap.String("city", req.City),
		zap.String("service_type", req.ServiceType),
		zap.Int("stops", len(resp.OrderedCustomers)),
		zap.Int("total_minutes", resp.TotalDurationMinutes),
	)
	return resp, nil
}

// PricingConfiguration returns the current rate table
func (s *Service) PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error) {
	cfg, err := s.source.PricingConfiguration(ctx)
	if err != nil {
		return nil, storageError("load pricing configuration", err)
	}
	return cfg, nil
}

// CityRules returns the current travel fee rules
func (s *Service) CityRules(ctx context.Context) ([]types.CityRule, error) {
	rules, err := s.source.CityRules(ctx)
	if err != nil {
		return nil, storageError("load city rules", err)
	}
	return rules, nil
}

// storageError keeps typed errors and wraps anything else as STORAGE_ERROR
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.Storage(op, err)
}

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func ensureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
