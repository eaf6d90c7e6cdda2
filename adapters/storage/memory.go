package storage

import (
	"context"
	"sync"

	"cleanplan/core/types"
)

// MemorySource keeps everything in memory. Opened through config it is
// seeded once from the configured files and never re-reads them.
type MemorySource struct {
	mu        sync.RWMutex
	pricing   *types.PricingConfiguration
	cities    []types.CityRule
	customers []types.Customer
}

// NewMemorySource creates a memory source. A nil pricing configuration
// means the default rate table.
func NewMemorySource(pricing *types.PricingConfiguration, cities []types.CityRule, customers []types.Customer) *MemorySource {
	return &MemorySource{
		pricing:   pricing,
		cities:    cities,
		customers: customers,
	}
}

// LoadMemorySource copies the current contents of from into a new memory
// source
func LoadMemorySource(ctx context.Context, from Source) (*MemorySource, error) {
	pricing, cities, err := from.RateSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := from.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return NewMemorySource(pricing, cities, customers), nil
}

// SetPricingConfiguration replaces the rate table
func (s *MemorySource) SetPricingConfiguration(cfg *types.PricingConfiguration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricing = cfg
}

// SetCityRules replaces the city rules
func (s *MemorySource) SetCityRules(rules []types.CityRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = append([]types.CityRule(nil), rules...)
}

// SetCustomers replaces the customer list
func (s *MemorySource) SetCustomers(customers []types.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]types.Customer(nil), customers...)
}

// PricingConfiguration implements Source
func (s *MemorySource) PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pricing == nil {
		return types.DefaultPricingConfiguration(), nil
	}
	cfg := *s.pricing
	return &cfg, nil
}

// RateSnapshot implements Source
func (s *MemorySource) RateSnapshot(ctx context.Context) (*types.PricingConfiguration, []types.CityRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := types.DefaultPricingConfiguration()
	if s.pricing != nil {
		copied := *s.pricing
		cfg = &copied
	}
	return cfg, append([]types.CityRule(nil), s.cities...), nil
}

// CityRules implements Source
func (s *MemorySource) CityRules(ctx context.Context) ([]types.CityRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.CityRule(nil), s.cities...), nil
}

// Customers implements Source
func (s *MemorySource) Customers(ctx context.Context) ([]types.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Customer(nil), s.customers...), nil
}

// Close implements Source
func (s *MemorySource) Close() error {
	return nil
}
