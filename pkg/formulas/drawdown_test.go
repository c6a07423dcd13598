package formulas

import (
	"math"
	"testing"
)

func TestCalculateMaxDrawdown(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		expected  *float64
		tolerance float64
	}{
		{
			name:     "fewer than 2 values",
			values:   []float64{100},
			expected: nil,
		},
		{
			name:      "monotonic rise has zero drawdown",
			values:    []float64{100, 110, 120, 130},
			expected:  floatPtr(0),
			tolerance: 0,
		},
		{
			name:      "single dip",
			values:    []float64{100, 120, 90, 130},
			expected:  floatPtr(0.25), // (120-90)/120
			tolerance: 1e-9,
		},
		{
			name:      "deepest dip wins",
			values:    []float64{100, 120, 90, 130, 80},
			expected:  floatPtr(0.3846), // (130-80)/130
			tolerance: 0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMaxDrawdown(tt.values)
			if tt.expected == nil {
				if result != nil {
					t.Fatalf("CalculateMaxDrawdown() = %v, want nil", *result)
				}
				return
			}
			if result == nil {
				t.Fatalf("CalculateMaxDrawdown() = nil, want %v", *tt.expected)
			}
			if math.Abs(*result-*tt.expected) > tt.tolerance {
				t.Errorf("CalculateMaxDrawdown() = %v, want %v (±%v)", *result, *tt.expected, tt.tolerance)
			}
		})
	}
}

func TestCalculateDrawdownMetrics(t *testing.T) {
	values := []float64{100, 120, 90, 130, 80}
	m := CalculateDrawdownMetrics(values)
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.MaxDrawdownAt != 4 {
		t.Errorf("MaxDrawdownAt = %d, want 4", m.MaxDrawdownAt)
	}
	if m.PeakValue != 130 {
		t.Errorf("PeakValue = %v, want 130", m.PeakValue)
	}
	if m.CurrentValue != 80 {
		t.Errorf("CurrentValue = %v, want 80", m.CurrentValue)
	}
	if math.Abs(m.CurrentDrawdown-m.MaxDrawdown) > 1e-12 {
		t.Errorf("CurrentDrawdown = %v, want %v (series ends at the trough)", m.CurrentDrawdown, m.MaxDrawdown)
	}
}
