package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cleanplan/core/types"
	"cleanplan/internal/errors"
)

// PostgresSource reads from the pricing_settings, city_pricing and
// customers tables.
type PostgresSource struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresSource connects to databaseURL and verifies the connection
func NewPostgresSource(ctx context.Context, databaseURL string, timeout time.Duration) (*PostgresSource, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid database url", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Storage("connect to postgres", err)
	}

	return NewPostgresSourceFromPool(pool, timeout), nil
}

// NewPostgresSourceFromPool wraps an existing pool
func NewPostgresSourceFromPool(pool *pgxpool.Pool, timeout time.Duration) *PostgresSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PostgresSource{db: pool, timeout: timeout}
}

// querier is the read surface shared by the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pricingSettingsQuery = `
        SELECT pv_config::text, stairwell_config::text,
               glass_config::text, maintenance_config::text
        FROM pricing_settings
        ORDER BY id
        LIMIT 1`

	cityPricingQuery = `
        SELECT city_name, COALESCE(travel_fee, 0)::text,
               min_order_value::text, surcharge_percent::text
        FROM city_pricing
        ORDER BY id`

	customersQuery = `
        SELECT id::text, name, COALESCE(address, ''), COALESCE(city, ''),
               COALESCE(service_tags, '{}'), duration_minutes, lat, lng,
               COALESCE(is_active, true), COALESCE(is_existing_customer, false)
        FROM customers
        ORDER BY id`
)

// PricingConfiguration implements Source. With no pricing_settings row the
// default rate table is returned.
func (s *PostgresSource) PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return loadPricingSettings(ctx, s.db)
}

// CityRules implements Source
func (s *PostgresSource) CityRules(ctx context.Context) ([]types.CityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return loadCityRules(ctx, s.db)
}

// RateSnapshot implements Source. Both tables are read inside one
// read-only repeatable-read transaction.
func (s *PostgresSource) RateSnapshot(ctx context.Context) (*types.PricingConfiguration, []types.CityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, nil, errors.Storage("begin rate snapshot", err)
	}
	defer tx.Rollback(ctx)

	cfg, err := loadPricingSettings(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	rules, err := loadCityRules(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, errors.Storage("commit rate snapshot", err)
	}
	return cfg, rules, nil
}

// Customers implements Source
func (s *PostgresSource) Customers(ctx context.Context) ([]types.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.Query(ctx, customersQuery)
	if err != nil {
		return nil, errors.Storage("load customers", err)
	}
	defer rows.Close()

	var customers []types.Customer
	for rows.Next() {
		var row customerRow
		if err := rows.Scan(
			&row.id, &row.name, &row.address, &row.city,
			&row.serviceTags, &row.durationMinutes, &row.lat, &row.lng,
			&row.isActive, &row.isExisting,
		); err != nil {
			return nil, errors.Storage("scan customer", err)
		}
		customers = append(customers, row.customer())
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate customers", err)
	}
	return customers, nil
}

func loadPricingSettings(ctx context.Context, q querier) (*types.PricingConfiguration, error) {
	var row settingsRow
	err := q.QueryRow(ctx, pricingSettingsQuery).Scan(&row.pv, &row.stairwell, &row.glass, &row.maintenance)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return types.DefaultPricingConfiguration(), nil
		}
		return nil, errors.Storage("load pricing settings", err)
	}
	return row.decode()
}

func loadCityRules(ctx context.Context, q querier) ([]types.CityRule, error) {
	rows, err := q.Query(ctx, cityPricingQuery)
	if err != nil {
		return nil, errors.Storage("load city pricing", err)
	}
	defer rows.Close()

	var rules []types.CityRule
	for rows.Next() {
		var (
			name                string
			fee                 string
			minOrder, surcharge *string
		)
		if err := rows.Scan(&name, &fee, &minOrder, &surcharge); err != nil {
			return nil, errors.Storage("scan city pricing", err)
		}
		rule, err := cityRuleFromRow(name, fee, minOrder, surcharge)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate city pricing", err)
	}
	return rules, nil
}

// Close implements Source. It is safe on a nil or unconnected source.
func (s *PostgresSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.db.Close()
	return nil
}

// settingsRow holds the JSON columns of a pricing_settings row.
// NULL columns keep the default section.
type settingsRow struct {
	pv, stairwell, glass, maintenance *string
}

func (r settingsRow) decode() (*types.PricingConfiguration, error) {
	cfg := types.DefaultPricingConfiguration()

	sections := []struct {
		column string
		raw    *string
		target interface{}
	}{
		{"pv_config", r.pv, &cfg.Photovoltaic},
		{"stairwell_config", r.stairwell, &cfg.Stairwell},
		{"glass_config", r.glass, &cfg.Glass},
		{"maintenance_config", r.maintenance, &cfg.Maintenance},
	}
	for _, sec := range sections {
		if sec.raw == nil {
			continue
		}
		if err := json.Unmarshal([]byte(*sec.raw), sec.target); err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "decode pricing_settings.%s", sec.column)
		}
	}
	return cfg, nil
}

// customerRow holds a scanned customers row. Nullable flags follow the
// JSON defaults: active unless stated otherwise, not an existing customer.
type customerRow struct {
	id, name, address, city string
	serviceTags             []string
	durationMinutes         *int
	lat, lng                *float64
	isActive, isExisting    *bool
}

func (r customerRow) customer() types.Customer {
	c := types.Customer{
		ID:              r.id,
		Name:            r.name,
		Address:         r.address,
		City:            r.city,
		ServiceTags:     r.serviceTags,
		DurationMinutes: r.durationMinutes,
		Lat:             r.lat,
		Lng:             r.lng,
		IsActive:        true,
	}
	if r.isActive != nil {
		c.IsActive = *r.isActive
	}
	if r.isExisting != nil {
		c.IsExistingCustomer = *r.isExisting
	}
	if c.ServiceTags == nil {
		c.ServiceTags = []string{}
	}
	return c
}

func cityRuleFromRow(name, fee string, minOrder, surcharge *string) (types.CityRule, error) {
	rule := types.CityRule{CityName: name}

	var err error
	if rule.TravelFee, err = decimal.NewFromString(fee); err != nil {
		return rule, errors.Wrapf(errors.TypeConfig, err, "travel_fee of %s", name)
	}
	if rule.MinOrderValue, err = nullableDecimal(minOrder); err != nil {
		return rule, errors.Wrapf(errors.TypeConfig, err, "min_order_value of %s", name)
	}
	if rule.SurchargePercent, err = nullableDecimal(surcharge); err != nil {
		return rule, errors.Wrapf(errors.TypeConfig, err, "surcharge_percent of %s", name)
	}
	return rule, nil
}

func nullableDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
