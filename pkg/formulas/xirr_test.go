package formulas

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestXIRR(t *testing.T) {
	tests := []struct {
		name      string
		flows     []CashFlow
		expected  *float64
		tolerance float64
	}{
		{
			name:     "no flows",
			flows:    nil,
			expected: nil,
		},
		{
			name: "single flow",
			flows: []CashFlow{
				{Date: date(2024, 1, 1), Amount: -1000},
			},
			expected: nil,
		},
		{
			name: "deposit then withdrawal one year later reduces to closed form",
			flows: []CashFlow{
				{Date: date(2024, 1, 1), Amount: -1000},
				{Date: date(2024, 12, 31), Amount: 1100}, // 365 days later
			},
			expected:  floatPtr(10.0), // exactly (1100/1000)^(1/1) - 1
			tolerance: 0.01,
		},
		{
			name: "doubling over two years is about 41.4% per year",
			flows: []CashFlow{
				{Date: date(2022, 1, 1), Amount: -1000},
				{Date: date(2023, 12, 31), Amount: 2000}, // 729 days
			},
			expected:  floatPtr(41.5), // sqrt(2)-1 over slightly under 2 years
			tolerance: 0.2,
		},
		{
			name: "loss-making investment",
			flows: []CashFlow{
				{Date: date(2024, 1, 1), Amount: -1000},
				{Date: date(2024, 12, 31), Amount: 800},
			},
			expected:  floatPtr(-20.0),
			tolerance: 0.01,
		},
		{
			name: "all flows on the same date has a zero derivative",
			flows: []CashFlow{
				{Date: date(2024, 1, 1), Amount: -1000},
				{Date: date(2024, 1, 1), Amount: 1100},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := XIRR(tt.flows, XIRRConfig{})
			if tt.expected == nil {
				if result != nil {
					t.Fatalf("XIRR() = %v, want nil", *result)
				}
				return
			}
			if result == nil {
				t.Fatalf("XIRR() = nil, want %v", *tt.expected)
			}
			if math.Abs(*result-*tt.expected) > tt.tolerance {
				t.Errorf("XIRR() = %v, want %v (±%v)", *result, *tt.expected, tt.tolerance)
			}
		})
	}
}

func TestXIRRConfigOverrides(t *testing.T) {
	flows := []CashFlow{
		{Date: date(2024, 1, 1), Amount: -1000},
		{Date: date(2024, 12, 31), Amount: 1100},
	}

	// A generous tolerance still converges to roughly the same rate.
	loose := XIRR(flows, XIRRConfig{Tolerance: 1e-3})
	if loose == nil {
		t.Fatal("expected convergence with loose tolerance")
	}
	if math.Abs(*loose-10.0) > 0.5 {
		t.Errorf("XIRR() with loose tolerance = %v, want ~10", *loose)
	}

	// Starting from a different guess converges to the same root.
	fromAbove := XIRR(flows, XIRRConfig{InitialGuess: 0.5})
	if fromAbove == nil {
		t.Fatal("expected convergence from 50% initial guess")
	}
	if math.Abs(*fromAbove-10.0) > 0.1 {
		t.Errorf("XIRR() from 0.5 guess = %v, want ~10", *fromAbove)
	}

	// A single iteration is not enough to converge when the root is far
	// from the initial guess.
	farFlows := []CashFlow{
		{Date: date(2022, 1, 1), Amount: -1000},
		{Date: date(2023, 12, 31), Amount: 2000},
	}
	if got := XIRR(farFlows, XIRRConfig{MaxIterations: 1}); got != nil {
		t.Errorf("XIRR() with 1 iteration = %v, want nil", *got)
	}
}

func floatPtr(f float64) *float64 { return &f }
