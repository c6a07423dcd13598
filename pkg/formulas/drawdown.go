package formulas

// DrawdownMetrics represents drawdown analysis results
type DrawdownMetrics struct {
	MaxDrawdown     float64 `json:"max_drawdown"`     // Maximum drawdown (positive fraction, 0.25 = 25% loss from peak)
	MaxDrawdownAt   int     `json:"max_drawdown_at"`  // Index into the value series where the max drawdown occurred
	CurrentDrawdown float64 `json:"current_drawdown"` // Current drawdown from peak
	PeakValue       float64 `json:"peak_value"`       // Value at peak
	CurrentValue    float64 `json:"current_value"`    // Last value in the series
}

// CalculateMaxDrawdown calculates the maximum drawdown from a value series.
//
// Drawdown Formula:
//
//	Drawdown = (Peak Value - Current Value) / Peak Value
//	Max Drawdown = Maximum of all drawdowns
//
// Returns nil with fewer than 2 values.
func CalculateMaxDrawdown(values []float64) *float64 {
	m := CalculateDrawdownMetrics(values)
	if m == nil {
		return nil
	}
	return &m.MaxDrawdown
}

// CalculateDrawdownMetrics walks the value series tracking a running peak
// and returns comprehensive drawdown metrics, including the index at which
// the maximum drawdown was observed. Returns nil with fewer than 2 values.
func CalculateDrawdownMetrics(values []float64) *DrawdownMetrics {
	if len(values) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	maxDrawdownAt := 0
	peak := values[0]

	for i, value := range values {
		if value > peak {
			peak = value
		}
		if peak > 0 {
			drawdown := (peak - value) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
				maxDrawdownAt = i
			}
		}
	}

	currentValue := values[len(values)-1]
	currentDrawdown := 0.0
	if peak > 0 {
		currentDrawdown = (peak - currentValue) / peak
	}

	return &DrawdownMetrics{
		MaxDrawdown:     maxDrawdown,
		MaxDrawdownAt:   maxDrawdownAt,
		CurrentDrawdown: currentDrawdown,
		PeakValue:       peak,
		CurrentValue:    currentValue,
	}
}
