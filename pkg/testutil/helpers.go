// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/proforma/internal/engine"
)

// MustValue reads a line item value from an evaluated model, failing the
// test on any lookup error.
func MustValue(t *testing.T, m *engine.Model, name string, period int) float64 {
	t.Helper()
	value, err := m.Value(name, period)
	if err != nil {
		t.Fatalf("Value(%s, %d) error = %v", name, period, err)
	}
	return value
}
