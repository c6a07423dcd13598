package formulas

import (
	"math"
	"testing"
)

// alternating +2%/-1% monthly returns, 12 samples
func alternatingReturns() []float64 {
	return []float64{0.02, -0.01, 0.02, -0.01, 0.02, -0.01, 0.02, -0.01, 0.02, -0.01, 0.02, -0.01}
}

func TestCalculateSharpeRatio(t *testing.T) {
	tests := []struct {
		name      string
		returns   []float64
		riskFree  float64
		expected  *float64
		tolerance float64
	}{
		{
			name:     "fewer than 12 returns",
			returns:  []float64{0.01, 0.02, 0.03},
			riskFree: 0.04,
			expected: nil,
		},
		{
			name:     "constant returns have zero stddev",
			returns:  []float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01},
			riskFree: 0.04,
			expected: nil,
		},
		{
			name:      "alternating returns",
			returns:   alternatingReturns(),
			riskFree:  0.04,
			expected:  floatPtr(0.3685), // (0.005*12 - 0.04) / (stddev * sqrt(12))
			tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateSharpeRatio(tt.returns, tt.riskFree)
			if tt.expected == nil {
				if result != nil {
					t.Fatalf("CalculateSharpeRatio() = %v, want nil", *result)
				}
				return
			}
			if result == nil {
				t.Fatalf("CalculateSharpeRatio() = nil, want %v", *tt.expected)
			}
			if math.Abs(*result-*tt.expected) > tt.tolerance {
				t.Errorf("CalculateSharpeRatio() = %v, want %v (±%v)", *result, *tt.expected, tt.tolerance)
			}
		})
	}
}

func TestCalculateSortinoRatio(t *testing.T) {
	tests := []struct {
		name      string
		returns   []float64
		riskFree  float64
		target    float64
		expected  *float64
		tolerance float64
	}{
		{
			name:     "fewer than 12 returns",
			returns:  []float64{0.01, -0.02},
			riskFree: 0.04,
			expected: nil,
		},
		{
			name:     "no downside returns",
			returns:  []float64{0.01, 0.02, 0.01, 0.02, 0.01, 0.02, 0.01, 0.02, 0.01, 0.02, 0.01, 0.02},
			riskFree: 0.04,
			expected: nil,
		},
		{
			name:     "alternating returns",
			returns:  alternatingReturns(),
			riskFree: 0.04,
			target:   0,
			// downside deviation is exactly 0.01 (population, six -1% samples),
			// so sortino = (0.06 - 0.04) / (0.01 * sqrt(12))
			expected:  floatPtr(0.5774),
			tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateSortinoRatio(tt.returns, tt.riskFree, tt.target)
			if tt.expected == nil {
				if result != nil {
					t.Fatalf("CalculateSortinoRatio() = %v, want nil", *result)
				}
				return
			}
			if result == nil {
				t.Fatalf("CalculateSortinoRatio() = nil, want %v", *tt.expected)
			}
			if math.Abs(*result-*tt.expected) > tt.tolerance {
				t.Errorf("CalculateSortinoRatio() = %v, want %v (±%v)", *result, *tt.expected, tt.tolerance)
			}
		})
	}
}

func TestSortinoUsesPopulationDownsideVariance(t *testing.T) {
	// Single downside return of -3% among 12: population variance divides by
	// the downside count (1), so the deviation is exactly 0.03.
	returns := []float64{0.01, 0.01, 0.01, 0.01, 0.01, -0.03, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01}
	result := CalculateSortinoRatio(returns, 0.0, 0)
	if result == nil {
		t.Fatal("expected a sortino ratio")
	}
	mean := Mean(returns) * 12
	expected := mean / (0.03 * math.Sqrt(12))
	if math.Abs(*result-expected) > 1e-9 {
		t.Errorf("CalculateSortinoRatio() = %v, want %v", *result, expected)
	}
}
