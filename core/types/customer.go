// Package types - Customer and planning types
package types

import "encoding/json"

// Coordinates is a WGS-84 position in degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Customer is a customer record as supplied by the customer store
type Customer struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Address            string   `json:"address,omitempty"`
	City               string   `json:"city,omitempty"`
	ServiceTags        []string `json:"service_tags"`
	DurationMinutes    *int     `json:"duration_minutes,omitempty"`
	Lat                *float64 `json:"lat,omitempty"`
	Lng                *float64 `json:"lng,omitempty"`
	IsActive           bool     `json:"is_active"`
	IsExistingCustomer bool     `json:"is_existing_customer"`
}

// UnmarshalJSON defaults is_active to true when absent
func (c *Customer) UnmarshalJSON(data []byte) error {
	type plain Customer
	decoded := plain{IsActive: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = Customer(decoded)
	return nil
}

// Coordinates returns the customer position if both lat and lng are known
func (c *Customer) Coordinates() (Coordinates, bool) {
	if c.Lat == nil || c.Lng == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *c.Lat, Lng: *c.Lng}, true
}

// ServiceMinutes returns the configured service duration, zero when unset
func (c *Customer) ServiceMinutes() int {
	if c.DurationMinutes == nil || *c.DurationMinutes < 0 {
		return 0
	}
	return *c.DurationMinutes
}

// HasServiceTag reports whether any service tag matches tag,
// ignoring case and surrounding whitespace
func (c *Customer) HasServiceTag(tag string) bool {
	want := NormalizeName(tag)
	for _, t := range c.ServiceTags {
		if NormalizeName(t) == want {
			return true
		}
	}
	return false
}

// InCity reports whether the customer is located in city
func (c *Customer) InCity(city string) bool {
	return NormalizeName(c.City) == NormalizeName(city)
}

// PlanRequest asks for an ordered visit list for one employee and day.
// Date and EmployeeID are passed through for the caller's own filtering.
type PlanRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	EmployeeID  string `json:"employee_id" validate:"required"`
	City        string `json:"city,omitempty"`
	ServiceType string `json:"service_type,omitempty"`
}

// PlanResponse is an ordered visit list with its estimated duration
type PlanResponse struct {
	OrderedCustomers     []Customer `json:"ordered_customers"`
	TotalDurationMinutes int        `json:"total_duration_minutes"`

	// breakdown of the total
	DistanceKm     float64 `json:"distance_km"`
	TravelMinutes  int     `json:"travel_minutes"`
	ServiceMinutes int     `json:"service_minutes"`
}
