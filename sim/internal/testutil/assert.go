// Package testutil provides shared assertion helpers for sim/ and
// sim/report/ tests.
package testutil

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertSeriesEqual compares two float64 series element-wise with relative tolerance.
func AssertSeriesEqual(t *testing.T, name string, want, got []float64, relTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: got %d values, want %d", name, len(got), len(want))
	}
	for i := range want {
		AssertFloat64Equal(t, name, want[i], got[i], relTol)
	}
}

// AssertDecimalEqual compares an amount against its exact decimal string form.
func AssertDecimalEqual(t *testing.T, name, want string, got decimal.Decimal) {
	t.Helper()
	w := decimal.RequireFromString(want)
	if !w.Equal(got) {
		t.Errorf("%s: got %s, want %s", name, got.String(), want)
	}
}
