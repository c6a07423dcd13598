package formulas

import "sort"

// HHIConcentrated and TopHoldingConcentrated are the thresholds above which
// a portfolio is flagged as concentrated (standard antitrust-style HHI
// bands: above 2500 is highly concentrated).
const (
	HHIConcentrated        = 2500.0
	TopHoldingConcentrated = 25.0 // percent of total value
)

// Concentration holds Herfindahl-Hirschman Index results for a portfolio.
type Concentration struct {
	HHI            float64 `json:"hhi"`
	TopHoldingPct  float64 `json:"top_holding_pct"`
	Top5Pct        float64 `json:"top5_pct"`
	IsConcentrated bool    `json:"is_concentrated"`
}

// CalculateConcentration computes the HHI over position market values:
// the sum of squared percentage weights. A single holding at 100% scores
// exactly 10000; N equal-weighted holdings score 10000/N.
//
// Zero or negative total value yields a zero-valued result.
func CalculateConcentration(values []float64) Concentration {
	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return Concentration{}
	}

	weights := make([]float64, len(values))
	var hhi float64
	for i, v := range values {
		pct := v / total * 100
		weights[i] = pct
		hhi += pct * pct
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))

	var top1, top5 float64
	if len(weights) > 0 {
		top1 = weights[0]
	}
	for i := 0; i < len(weights) && i < 5; i++ {
		top5 += weights[i]
	}

	return Concentration{
		HHI:            hhi,
		TopHoldingPct:  top1,
		Top5Pct:        top5,
		IsConcentrated: hhi > HHIConcentrated || top1 > TopHoldingConcentrated,
	}
}
