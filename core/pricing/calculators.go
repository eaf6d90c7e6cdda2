package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cleanplan/core/types"
)

// categoryResult is the outcome of one category calculator
type categoryResult struct {
	net     decimal.Decimal
	details types.Details

	// gaps lists configuration gaps that degraded to a zero default
	gaps []string
}

// calculateCategory dispatches to the calculator for req.Category
func calculateCategory(req *types.QuoteRequest, cfg *types.PricingConfiguration) categoryResult {
	switch req.Category {
	case types.CategoryPhotovoltaic:
		return calculatePhotovoltaic(req, cfg.Photovoltaic)
	case types.CategoryStairwell:
		return calculateStairwell(req, cfg.Stairwell)
	case types.CategoryGlass:
		return calculateGlass(req, cfg.Glass)
	case types.CategoryMaintenance:
		return calculateMaintenance(req, cfg.Maintenance)
	}

	msg := fmt.Sprintf("unknown category: %s", req.Category)
	return categoryResult{
		net:     decimal.Zero,
		details: types.Details{types.DetailError: msg},
		gaps:    []string{msg},
	}
}

func calculatePhotovoltaic(req *types.QuoteRequest, cfg types.PhotovoltaicConfig) categoryResult {
	count := nonNegative(req.ModuleCount)
	unitPrice, tier := ResolveTier(cfg.Tiers, count)

	base := decimal.NewFromInt(int64(count)).Mul(unitPrice)

	difficult := decimal.Zero
	if req.DifficultAccess {
		difficult = percentOf(base, cfg.DifficultAccessSurchargePercent)
	}

	dirty := decimal.Zero
	if req.VeryDirty {
		dirty = cfg.DirtySurchargeFixed
	}

	details := types.Details{
		"count":               count,
		"price_per_module":    unitPrice,
		"base":                base,
		"surcharge_difficult": difficult,
		"surcharge_dirty":     dirty,
	}

	var gaps []string
	if tier == nil {
		gaps = append(gaps, fmt.Sprintf("no photovoltaic tier covers %d modules", count))
	} else {
		details["tier"] = fmt.Sprintf("%d-%s", tier.Min, tier.Max)
	}

	return categoryResult{
		net:     base.Add(difficult).Add(dirty),
		details: details,
		gaps:    gaps,
	}
}

func calculateStairwell(req *types.QuoteRequest, cfg types.StairwellConfig) categoryResult {
	method := cfg.Method
	if method == "" {
		method = types.StairwellUnits
	}
	details := types.Details{types.DetailMethod: string(method)}

	var net decimal.Decimal
	switch method {
	case types.StairwellUnits:
		units := nonNegative(req.Units)
		freq := req.FrequencyPerMonth
		if freq <= 0 {
			freq = types.DefaultFrequencyPerMonth
		}
		band := types.BandForFrequency(freq)
		unitPrice := cfg.UnitPrice(band)

		net = decimal.NewFromInt(int64(units)).Mul(unitPrice).Add(cfg.BasePriceObject)
		details["units"] = units
		details["freq"] = freq
		details["band"] = string(band)
		details["p_unit"] = unitPrice
		details["base_obj"] = cfg.BasePriceObject

	case types.StairwellAreaBased:
		area := nonNegativeDecimal(req.Area)
		rate := cfg.PriceAreaAfterThreshold
		if area.LessThanOrEqual(cfg.AreaThreshold) {
			rate = cfg.PriceAreaUpToThreshold
		}

		net = area.Mul(rate).Add(cfg.BasePriceArea)
		details["sqm"] = area
		details["price_sqm"] = rate
		details["base_sqm"] = cfg.BasePriceArea

	case types.StairwellFlat:
		windows := nonNegative(req.WindowsCount)
		net = cfg.FlatPrice
		if req.HasCellar {
			net = net.Add(cfg.CellarPrice)
		}
		net = net.Add(decimal.NewFromInt(int64(windows)).Mul(cfg.WindowPrice))
		details["flat"] = cfg.FlatPrice
		details["cellar"] = req.HasCellar
		details["windows"] = windows

	default:
		msg := fmt.Sprintf("unknown stairwell method: %s", method)
		details[types.DetailError] = msg
		return categoryResult{net: decimal.Zero, details: details, gaps: []string{msg}}
	}

	return categoryResult{net: net, details: details}
}

func calculateGlass(req *types.QuoteRequest, cfg types.GlassConfig) categoryResult {
	method := req.GlassMethod.OrDefault()
	details := types.Details{types.DetailMethod: string(method)}

	var net decimal.Decimal
	switch method {
	case types.GlassPerWindow:
		in := nonNegative(req.GlassCountIn)
		out := nonNegative(req.GlassCountOut)
		base := decimal.NewFromInt(int64(in)).Mul(cfg.PriceWindowIn).
			Add(decimal.NewFromInt(int64(out)).Mul(cfg.PriceWindowOut))

		height := decimal.Zero
		if req.GlassHeightSurcharge {
			height = cfg.HeightSurcharge
		}
		difficult := decimal.Zero
		if req.GlassDifficultAccess {
			difficult = percentOf(base, cfg.DifficultAccessSurchargePercent)
		}

		net = base.Add(height).Add(difficult)
		details["count_in"] = in
		details["count_out"] = out
		details["base"] = base
		details["surcharge_height"] = height
		details["surcharge_difficult"] = difficult

	case types.GlassPerArea:
		in := nonNegativeDecimal(req.GlassAreaIn)
		out := nonNegativeDecimal(req.GlassAreaOut)
		base := in.Mul(cfg.PriceAreaIn).Add(out.Mul(cfg.PriceAreaOut))

		frame := decimal.Zero
		if req.FrameCleaning {
			frame = percentOf(base, cfg.FrameSurchargePercent)
		}

		net = base.Add(frame)
		details["sqm_in"] = in
		details["sqm_out"] = out
		details["base"] = base
		details["surcharge_frame"] = frame

	default:
		msg := fmt.Sprintf("unknown glass calculation method: %s", method)
		details[types.DetailError] = msg
		return categoryResult{net: decimal.Zero, details: details, gaps: []string{msg}}
	}

	return categoryResult{net: net, details: details}
}

func calculateMaintenance(req *types.QuoteRequest, cfg types.MaintenanceConfig) categoryResult {
	details := types.Details{}

	switch {
	case req.HoursEstimated.IsPositive():
		details[types.DetailMethod] = "hourly"
		details["hours"] = req.HoursEstimated
		details["rate"] = cfg.HourlyRate
		return categoryResult{net: req.HoursEstimated.Mul(cfg.HourlyRate), details: details}

	case req.MaintenanceArea.IsPositive():
		details[types.DetailMethod] = "sqm"
		details["sqm"] = req.MaintenanceArea
		details["price_sqm"] = cfg.PricePerArea
		return categoryResult{net: req.MaintenanceArea.Mul(cfg.PricePerArea), details: details}
	}

	return categoryResult{net: decimal.Zero, details: details}
}
