package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"cleanplan/core/types"
	"cleanplan/internal/errors"
	"cleanplan/internal/logging"
)

// FileSource reads the rate table and customer list from local files.
// Files are read on every call so edits apply without a restart.
type FileSource struct {
	pricingPath   string
	customersPath string
	logger        *zap.Logger
}

// NewFileSource creates a file source. The rate table may be HCL (.hcl) or
// JSON in the API wire format (.json). The customer list is a JSON array.
func NewFileSource(pricingPath, customersPath string) *FileSource {
	return &FileSource{
		pricingPath:   pricingPath,
		customersPath: customersPath,
		logger:        logging.Named("storage.file"),
	}
}

// PricingConfiguration implements Source
func (s *FileSource) PricingConfiguration(ctx context.Context) (*types.PricingConfiguration, error) {
	table, err := s.rateTable(ctx)
	if err != nil {
		return nil, err
	}
	return table.Pricing, nil
}

// RateSnapshot implements Source. The rate table file is parsed once so
// both halves come from the same version of the file.
func (s *FileSource) RateSnapshot(ctx context.Context) (*types.PricingConfiguration, []types.CityRule, error) {
	table, err := s.rateTable(ctx)
	if err != nil {
		return nil, nil, err
	}
	return table.Pricing, table.Cities, nil
}

// CityRules implements Source
func (s *FileSource) CityRules(ctx context.Context) ([]types.CityRule, error) {
	table, err := s.rateTable(ctx)
	if err != nil {
		return nil, err
	}
	return table.Cities, nil
}

// Customers implements Source
func (s *FileSource) Customers(ctx context.Context) ([]types.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, ok, err := s.read(s.customersPath)
	if err != nil || !ok {
		return nil, err
	}

	var customers []types.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, errors.Wrapf(errors.TypeStorage, err, "decode customers %s", s.customersPath)
	}
	return customers, nil
}

// Close implements Source
func (s *FileSource) Close() error {
	return nil
}

func (s *FileSource) rateTable(ctx context.Context) (*RateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, ok, err := s.read(s.pricingPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &RateTable{Pricing: types.DefaultPricingConfiguration()}, nil
	}

	if strings.EqualFold(filepath.Ext(s.pricingPath), ".json") {
		return decodeRateTableJSON(data, s.pricingPath)
	}
	return ParseRateTable(data, s.pricingPath)
}

// read returns false without error when path is unset or missing
func (s *FileSource) read(path string) ([]byte, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("data file not found, using defaults", zap.String("path", path))
			return nil, false, nil
		}
		return nil, false, errors.Storage("read "+path, err)
	}
	return data, true, nil
}

// decodeRateTableJSON accepts {"pv_config": ..., "cities": [...]}
func decodeRateTableJSON(data []byte, filename string) (*RateTable, error) {
	var doc struct {
		types.PricingConfiguration
		Cities []types.CityRule `json:"cities"`
	}
	doc.PricingConfiguration = *types.DefaultPricingConfiguration()

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "decode rate table %s", filename)
	}

	cfg := doc.PricingConfiguration
	return &RateTable{Pricing: &cfg, Cities: doc.Cities}, nil
}
