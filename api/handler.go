package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cleanplan/core/types"
	"cleanplan/internal/errors"
)

// Handler serves the API routes
type Handler struct {
	svc     Service
	version string
}

// NewHandler creates a handler over svc
func NewHandler(svc Service, version string) *Handler {
	return &Handler{svc: svc, version: version}
}

// CalculatePrice handles POST /api/v1/pricing/calculate
func (h *Handler) CalculatePrice(c echo.Context) error {
	var req types.QuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.svc.Quote(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// PlanRoute handles POST /api/v1/planning/auto
func (h *Handler) PlanRoute(c echo.Context) error {
	var req types.PlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.svc.Plan(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	if resp.OrderedCustomers == nil {
		resp.OrderedCustomers = []types.Customer{}
	}
	return c.JSON(http.StatusOK, resp)
}

// PricingSettings handles GET /api/v1/pricing/settings
func (h *Handler) PricingSettings(c echo.Context) error {
	cfg, err := h.svc.PricingConfiguration(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// CityRules handles GET /api/v1/pricing/cities
func (h *Handler) CityRules(c echo.Context) error {
	rules, err := h.svc.CityRules(c.Request().Context())
	if err != nil {
		return err
	}
	if rules == nil {
		rules = []types.CityRule{}
	}
	return c.JSON(http.StatusOK, CityRulesResponse{Cities: rules, Count: len(rules)})
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// Version handles GET /version
func (h *Handler) Version(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{
		Version:    h.version,
		Engine:     "cleanplan",
		APIVersion: "v1",
	})
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid request body", err)
	}
	if err := c.Validate(req); err != nil {
		return errors.Wrap(errors.TypeInput, "validation failed", err)
	}
	return nil
}
