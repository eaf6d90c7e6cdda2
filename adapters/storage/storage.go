// Package storage provides the data sources behind quoting and planning.
// Supports multiple backends: file, PostgreSQL, memory.
package storage

import (
	"context"
	"time"

	"cleanplan/core/types"
	"cleanplan/internal/config"
	"cleanplan/internal/errors"
)

// Source supplies rate tables, city rules and customer records.
// Implementations must be safe for concurrent use.
type Source interface {
	// PricingConfiguration returns the active rate table. A store without
	// a rate table returns types.DefaultPricingConfiguration.
	PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error)

	// CityRules returns the travel fee rules in lookup order
	CityRules(ctx context.Context) ([]types.CityRule, error)

	// RateSnapshot returns the rate table and city rules read together,
	// so a concurrent edit never mixes two versions in one quote
	RateSnapshot(ctx context.Context) (*types.PricingConfiguration, []types.CityRule, error)

	// Customers returns all customer records, active or not
	Customers(ctx context.Context) ([]types.Customer, error)

	// Close releases the source
	Close() error
}

// DefaultTimeout bounds a single read when none is configured
const DefaultTimeout = 5 * time.Second

// Open creates the source selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (Source, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileSource(cfg.PricingFile, cfg.CustomersFile), nil
	case config.BackendPostgres:
		ps, err := NewPostgresSource(ctx, cfg.DatabaseURL, timeout)
		if err != nil {
			return nil, err
		}
		return ps, nil
	case config.BackendMemory:
		ms, err := LoadMemorySource(ctx, NewFileSource(cfg.PricingFile, cfg.CustomersFile))
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	return nil, errors.Newf(errors.TypeConfig, "unknown storage backend %q", cfg.Backend)
}
