package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", Input("units must be a number"), "[INPUT_ERROR] units must be a number"},
		{"wrapped", Storage("load customers", cause), "[STORAGE_ERROR] load customers: connection refused"},
		{"not found", NotFound("route", "/x"), "[NOT_FOUND] route not found: /x"},
		{"formatted", Wrapf(TypeConfig, cause, "open %s", "pricing.hcl"), "[CONFIG_ERROR] open pricing.hcl: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsAndIsType(t *testing.T) {
	cause := stderrors.New("boom")
	err := fmt.Errorf("quote: %w", Internal("calculate", cause))

	e, ok := As(err)
	if !ok {
		t.Fatal("As() should find the wrapped *Error")
	}
	if e.Type != TypeInternal {
		t.Errorf("Type = %s, want %s", e.Type, TypeInternal)
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if !IsType(err, TypeInternal) || IsType(err, TypeInput) {
		t.Error("IsType mismatch")
	}
	if _, ok := As(cause); ok {
		t.Error("As() should not match a plain error")
	}
	if IsType(nil, TypeInput) {
		t.Error("IsType(nil) should be false")
	}
}

func TestWithContext(t *testing.T) {
	err := Config("no photovoltaic tier covers 5 modules").WithContext("category", "photovoltaic")
	if err.Context["category"] != "photovoltaic" {
		t.Errorf("Context = %v", err.Context)
	}
	if !err.Is(TypeConfig) {
		t.Error("Is(TypeConfig) should be true")
	}
	if !strings.HasPrefix(err.Error(), "[CONFIG_ERROR]") {
		t.Errorf("Error() = %q", err.Error())
	}
}
