package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"cleanplan/internal/errors"
)

func strPtr(s string) *string {
	return &s
}

func TestSettingsRowDecode(t *testing.T) {
	row := settingsRow{
		pv:        strPtr(`{"tiers": [{"min": 0, "max": null, "price": "4.2"}], "surcharge_difficult_percent": 10}`),
		stairwell: nil,
		glass:     strPtr(`{"price_window_in": 3}`),
	}

	cfg, err := row.decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Photovoltaic.Tiers[0].PricePerUnit.Equal(dec("4.2")) {
		t.Errorf("expected tier price 4.2, got %s", cfg.Photovoltaic.Tiers[0].PricePerUnit)
	}
	if !cfg.Stairwell.AreaThreshold.Equal(dec("100")) {
		t.Errorf("expected default stairwell section, got threshold %s", cfg.Stairwell.AreaThreshold)
	}
	if !cfg.Glass.PriceWindowIn.Equal(dec("3")) {
		t.Errorf("expected window price 3, got %s", cfg.Glass.PriceWindowIn)
	}

	bad := settingsRow{maintenance: strPtr(`{"hourly_rate": "x"}`)}
	if _, err := bad.decode(); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestCityRuleFromRow(t *testing.T) {
	rule, err := cityRuleFromRow("Köln", "15.00", nil, strPtr("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rule.TravelFee.Equal(dec("15")) || rule.MinOrderValue != nil {
		t.Errorf("unexpected rule %+v", rule)
	}
	if rule.SurchargePercent == nil || !rule.SurchargePercent.Equal(dec("10")) {
		t.Errorf("expected surcharge 10, got %v", rule.SurchargePercent)
	}

	if _, err := cityRuleFromRow("Bonn", "abc", nil, nil); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func TestCustomerRow(t *testing.T) {
	lat, lng, minutes := 50.94, 6.96, 30

	tests := []struct {
		name         string
		row          customerRow
		wantActive   bool
		wantExisting bool
	}{
		{
			name:       "null flags",
			row:        customerRow{id: "1", name: "Müller"},
			wantActive: true,
		},
		{
			name:         "explicit flags",
			row:          customerRow{id: "2", name: "Schmidt", isActive: boolPtr(false), isExisting: boolPtr(true)},
			wantActive:   false,
			wantExisting: true,
		},
		{
			name:       "full row",
			row:        customerRow{id: "3", city: "Köln", serviceTags: []string{"pv"}, durationMinutes: &minutes, lat: &lat, lng: &lng, isActive: boolPtr(true)},
			wantActive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.row.customer()
			if c.ID != tt.row.id {
				t.Errorf("expected id %q, got %q", tt.row.id, c.ID)
			}
			if c.IsActive != tt.wantActive {
				t.Errorf("expected active %v, got %v", tt.wantActive, c.IsActive)
			}
			if c.IsExistingCustomer != tt.wantExisting {
				t.Errorf("expected existing %v, got %v", tt.wantExisting, c.IsExistingCustomer)
			}
			if c.ServiceTags == nil {
				t.Error("expected non-nil service tags")
			}
		})
	}

	c := tests[2].row.customer()
	if pos, ok := c.Coordinates(); !ok || pos.Lat != lat || c.ServiceMinutes() != 30 || !c.HasServiceTag("PV") {
		t.Errorf("unexpected customer %+v", c)
	}
}

// Requires a disposable database, e.g.
// CLEANPLAN_TEST_DATABASE_URL=postgres://localhost/cleanplan_test
func TestPostgresSourceIntegration(t *testing.T) {
	url := os.Getenv("CLEANPLAN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CLEANPLAN_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	src, err := NewPostgresSource(ctx, url, 5*time.Second)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer src.Close()

	ddl := []string{
		`DROP TABLE IF EXISTS pricing_settings, city_pricing, customers`,
		`CREATE TABLE pricing_settings (id serial PRIMARY KEY, pv_config jsonb, stairwell_config jsonb, glass_config jsonb, maintenance_config jsonb)`,
		`CREATE TABLE city_pricing (id serial PRIMARY KEY, city_name text NOT NULL, travel_fee numeric(10,2), min_order_value numeric(10,2), surcharge_percent numeric(5,2))`,
		`CREATE TABLE customers (id serial PRIMARY KEY, name text NOT NULL, address text, city text, service_tags text[], duration_minutes integer, lat double precision, lng double precision, is_active boolean DEFAULT true, is_existing_customer boolean)`,
	}
	for _, stmt := range ddl {
		if _, err := src.db.Exec(ctx, stmt); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	defer src.db.Exec(ctx, `DROP TABLE IF EXISTS pricing_settings, city_pricing, customers`)

	cfg, err := src.PricingConfiguration(ctx)
	if err != nil {
		t.Fatalf("empty settings: %v", err)
	}
	if len(cfg.Photovoltaic.Tiers) != 1 {
		t.Errorf("expected the default rate table without a settings row")
	}

	seed := []string{
		`INSERT INTO pricing_settings (pv_config) VALUES ('{"tiers": [{"min": 0, "max": null, "price": 5}]}')`,
		`INSERT INTO city_pricing (city_name, travel_fee, min_order_value) VALUES ('Köln', 15, 80)`,
		`INSERT INTO customers (name, city, service_tags, duration_minutes, lat, lng) VALUES ('Müller', 'Köln', '{pv}', 30, 50.94, 6.96)`,
		`INSERT INTO customers (name, city, is_active) VALUES ('Schmidt', 'Bonn', false)`,
		`INSERT INTO customers (name, city, is_active) VALUES ('Weber', 'Köln', NULL)`,
	}
	for _, stmt := range seed {
		if _, err := src.db.Exec(ctx, stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	cfg, err = src.PricingConfiguration(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !cfg.Photovoltaic.Tiers[0].PricePerUnit.Equal(dec("5")) {
		t.Errorf("expected tier price 5, got %s", cfg.Photovoltaic.Tiers[0].PricePerUnit)
	}

	rules, err := src.CityRules(ctx)
	if err != nil || len(rules) != 1 {
		t.Fatalf("expected one rule, got %d (%v)", len(rules), err)
	}
	if rules[0].MinOrderValue == nil || !rules[0].MinOrderValue.Equal(dec("80")) {
		t.Errorf("expected minimum order 80, got %v", rules[0].MinOrderValue)
	}

	snapCfg, snapRules, err := src.RateSnapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !snapCfg.Photovoltaic.Tiers[0].PricePerUnit.Equal(dec("5")) || len(snapRules) != 1 {
		t.Errorf("unexpected snapshot %+v / %+v", snapCfg.Photovoltaic, snapRules)
	}

	customers, err := src.Customers(ctx)
	if err != nil || len(customers) != 3 {
		t.Fatalf("expected three customers, got %d (%v)", len(customers), err)
	}
	if !customers[2].IsActive {
		t.Errorf("expected NULL is_active to read as active")
	}
	if customers[0].ServiceMinutes() != 30 || customers[0].Lat == nil {
		t.Errorf("unexpected first customer %+v", customers[0])
	}
	if customers[1].IsActive || customers[1].Lat != nil {
		t.Errorf("unexpected second customer %+v", customers[1])
	}
}
