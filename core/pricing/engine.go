package pricing

import (
	"fmt"
	"strings"

	"cleanplan/core/types"
	"cleanplan/internal/errors"
)

// Mode controls how configuration gaps are handled
type Mode string

const (
	// ModePermissive degrades gaps to zero and annotates the details
	ModePermissive Mode = "permissive"

	// ModeStrict reports gaps as configuration errors
	ModeStrict Mode = "strict"
)

// ParseMode parses a mode name. Empty means permissive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePermissive:
		return ModePermissive, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", errors.Newf(errors.TypeConfig, "unknown pricing mode %q", s)
}

// Engine prices quote requests against a rate-table snapshot.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	mode Mode
}

// NewEngine creates an engine in the given mode
func NewEngine(mode Mode) *Engine {
	if mode == "" {
		mode = ModePermissive
	}
	return &Engine{mode: mode}
}

// Mode returns the engine mode
func (e *Engine) Mode() Mode {
	return e.mode
}

// Quote prices req. In permissive mode it never fails; unknown categories,
// unmatched tiers and unmatched cities yield zero amounts plus annotations.
// In strict mode those gaps are returned as CONFIG_ERROR.
func (e *Engine) Quote(req *types.QuoteRequest, cfg *types.PricingConfiguration, rules []types.CityRule) (*types.QuoteResponse, error) {
	if req == nil {
		return nil, errors.Input("quote request is required")
	}
	if cfg == nil {
		cfg = types.DefaultPricingConfiguration()
	}

	category := calculateCategory(req, cfg)
	travel := ResolveTravelFee(req, rules, category.net)

	gaps := category.gaps
	if travel.Unmatched {
		gaps = append(gaps, fmt.Sprintf("no travel fee rule for city %q", strings.TrimSpace(req.City)))
	}

	if e.mode == ModeStrict && len(gaps) > 0 {
		return nil, errors.Config(strings.Join(gaps, "; ")).
			WithContext("category", req.Category.String())
	}

	details := types.Details{}
	details.Merge(category.details)
	details.Merge(travel.Details)
	if len(gaps) > 0 {
		details[types.DetailConfigWarnings] = gaps
	}

	net := travel.NetPrice
	return &types.QuoteResponse{
		Category:   req.Category,
		NetPrice:   net.Round(2),
		TravelFee:  travel.Fee.Round(2),
		TotalPrice: net.Add(travel.Fee).Round(2),
		Details:    details,
	}, nil
}
