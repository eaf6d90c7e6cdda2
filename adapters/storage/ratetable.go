package storage

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"cleanplan/core/types"
	"cleanplan/internal/errors"
)

// RateTable is a rate table together with its city rules
type RateTable struct {
	Pricing *types.PricingConfiguration `json:"pricing"`
	Cities  []types.CityRule            `json:"cities"`
}

// Amounts are read as strings so that literals like 0.1 stay exact.
// HCL converts number literals to strings on decode.

type hclRateTable struct {
	Photovoltaic *hclPhotovoltaic `hcl:"photovoltaic,block"`
	Stairwell    *hclStairwell    `hcl:"stairwell,block"`
	Glass        *hclGlass        `hcl:"glass,block"`
	Maintenance  *hclMaintenance  `hcl:"maintenance,block"`
	Cities       []hclCity        `hcl:"city,block"`
}

type hclPhotovoltaic struct {
	DifficultAccessPercent *string   `hcl:"surcharge_difficult_percent,optional"`
	DirtyFixed             *string   `hcl:"surcharge_dirty_fix,optional"`
	Tiers                  []hclTier `hcl:"tier,block"`
}

type hclTier struct {
	Min   int    `hcl:"min,optional"`
	Max   *int   `hcl:"max,optional"`
	Price string `hcl:"price"`
}

type hclStairwell struct {
	Method               *string `hcl:"method,optional"`
	PricePerUnitWeekly   *string `hcl:"price_per_unit_weekly,optional"`
	PricePerUnitBiweekly *string `hcl:"price_per_unit_biweekly,optional"`
	PricePerUnitMonthly  *string `hcl:"price_per_unit_monthly,optional"`
	BasePriceObject      *string `hcl:"base_price_obj,optional"`
	AreaThreshold        *string `hcl:"threshold_sqm,optional"`
	PriceAreaUpTo        *string `hcl:"price_sqm_upto,optional"`
	PriceAreaAfter       *string `hcl:"price_sqm_after,optional"`
	BasePriceArea        *string `hcl:"base_price_sqm,optional"`
	FlatPrice            *string `hcl:"flat_price,optional"`
	CellarPrice          *string `hcl:"cellar_price,optional"`
	WindowPrice          *string `hcl:"window_price,optional"`
}

type hclGlass struct {
	PriceWindowIn          *string `hcl:"price_window_in,optional"`
	PriceWindowOut         *string `hcl:"price_window_out,optional"`
	HeightSurcharge        *string `hcl:"surcharge_height,optional"`
	DifficultAccessPercent *string `hcl:"surcharge_difficult_percent,optional"`
	PriceAreaIn            *string `hcl:"price_sqm_in,optional"`
	PriceAreaOut           *string `hcl:"price_sqm_out,optional"`
	FramePercent           *string `hcl:"surcharge_frame_percent,optional"`
}

type hclMaintenance struct {
	HourlyRate   *string `hcl:"hourly_rate,optional"`
	PricePerArea *string `hcl:"price_sqm,optional"`
}

type hclCity struct {
	Name             string  `hcl:"name,label"`
	TravelFee        *string `hcl:"travel_fee,optional"`
	MinOrderValue    *string `hcl:"min_order_value,optional"`
	SurchargePercent *string `hcl:"surcharge_percent,optional"`
}

// ParseRateTable decodes an HCL rate table. Sections that are absent keep
// the values of types.DefaultPricingConfiguration.
//
//	photovoltaic {
//	  surcharge_difficult_percent = 15
//	  tier {
//	    min   = 0
//	    max   = 20
//	    price = 5
//	  }
//	}
//	city "Köln" {
//	  travel_fee = 15
//	}
func ParseRateTable(src []byte, filename string) (*RateTable, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeConfig, diags, "parse rate table %s", filename)
	}

	var doc hclRateTable
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeConfig, diags, "decode rate table %s", filename)
	}

	d := &amountDecoder{}
	table := doc.build(d)
	if d.err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, d.err, "rate table %s", filename)
	}
	return table, nil
}

func (doc *hclRateTable) build(d *amountDecoder) *RateTable {
	cfg := types.DefaultPricingConfiguration()

	if pv := doc.Photovoltaic; pv != nil {
		cfg.Photovoltaic.DifficultAccessSurchargePercent = d.amount("surcharge_difficult_percent", pv.DifficultAccessPercent)
		cfg.Photovoltaic.DirtySurchargeFixed = d.amount("surcharge_dirty_fix", pv.DirtyFixed)
		if len(pv.Tiers) > 0 {
			cfg.Photovoltaic.Tiers = make([]types.Tier, 0, len(pv.Tiers))
			for _, t := range pv.Tiers {
				tier := types.Tier{Min: t.Min, Max: types.Unbounded, PricePerUnit: d.amount("price", &t.Price)}
				if t.Max != nil {
					tier.Max = types.TierLimit(*t.Max)
				}
				cfg.Photovoltaic.Tiers = append(cfg.Photovoltaic.Tiers, tier)
			}
		}
	}

	if sw := doc.Stairwell; sw != nil {
		if sw.Method != nil {
			method, err := types.ParseStairwellMethod(*sw.Method)
			d.fail(err)
			cfg.Stairwell.Method = method
		}
		cfg.Stairwell.PricePerUnitWeekly = d.amount("price_per_unit_weekly", sw.PricePerUnitWeekly)
		cfg.Stairwell.PricePerUnitBiweekly = d.amount("price_per_unit_biweekly", sw.PricePerUnitBiweekly)
		cfg.Stairwell.PricePerUnitMonthly = d.amount("price_per_unit_monthly", sw.PricePerUnitMonthly)
		cfg.Stairwell.BasePriceObject = d.amount("base_price_obj", sw.BasePriceObject)
		if sw.AreaThreshold != nil {
			cfg.Stairwell.AreaThreshold = d.amount("threshold_sqm", sw.AreaThreshold)
		}
		cfg.Stairwell.PriceAreaUpToThreshold = d.amount("price_sqm_upto", sw.PriceAreaUpTo)
		cfg.Stairwell.PriceAreaAfterThreshold = d.amount("price_sqm_after", sw.PriceAreaAfter)
		cfg.Stairwell.BasePriceArea = d.amount("base_price_sqm", sw.BasePriceArea)
		cfg.Stairwell.FlatPrice = d.amount("flat_price", sw.FlatPrice)
		cfg.Stairwell.CellarPrice = d.amount("cellar_price", sw.CellarPrice)
		cfg.Stairwell.WindowPrice = d.amount("window_price", sw.WindowPrice)
	}

	if g := doc.Glass; g != nil {
		cfg.Glass = types.GlassConfig{
			PriceWindowIn:                   d.amount("price_window_in", g.PriceWindowIn),
			PriceWindowOut:                  d.amount("price_window_out", g.PriceWindowOut),
			HeightSurcharge:                 d.amount("surcharge_height", g.HeightSurcharge),
			DifficultAccessSurchargePercent: d.amount("surcharge_difficult_percent", g.DifficultAccessPercent),
			PriceAreaIn:                     d.amount("price_sqm_in", g.PriceAreaIn),
			PriceAreaOut:                    d.amount("price_sqm_out", g.PriceAreaOut),
			FrameSurchargePercent:           d.amount("surcharge_frame_percent", g.FramePercent),
		}
	}

	if m := doc.Maintenance; m != nil {
		cfg.Maintenance = types.MaintenanceConfig{
			HourlyRate:   d.amount("hourly_rate", m.HourlyRate),
			PricePerArea: d.amount("price_sqm", m.PricePerArea),
		}
	}

	cities := make([]types.CityRule, 0, len(doc.Cities))
	for _, c := range doc.Cities {
		cities = append(cities, types.CityRule{
			CityName:         c.Name,
			TravelFee:        d.amount("travel_fee", c.TravelFee),
			MinOrderValue:    d.optional("min_order_value", c.MinOrderValue),
			SurchargePercent: d.optional("surcharge_percent", c.SurchargePercent),
		})
	}

	return &RateTable{Pricing: cfg, Cities: cities}
}

// amountDecoder parses decimal attributes and keeps the first failure
type amountDecoder struct {
	err error
}

func (d *amountDecoder) fail(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

func (d *amountDecoder) amount(name string, s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(*s)
	if err != nil {
		d.fail(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid amount",
			Detail:   name + " must be a decimal number, got " + *s,
		})
		return decimal.Zero
	}
	return v
}

func (d *amountDecoder) optional(name string, s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	v := d.amount(name, s)
	return &v
}
