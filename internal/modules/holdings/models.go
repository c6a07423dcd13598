// Package holdings provides persistence and valuation for equity/ETF
// positions and their transaction logs.
package holdings

import "github.com/foliotracker/folio/internal/domain"

// HoldingWithCalculations is a holding enriched with derived valuation
// fields. The embedded entity is a read-only projection; calculations never
// mutate it.
type HoldingWithCalculations struct {
	domain.Holding

	CostBasis       float64 `json:"cost_basis"`
	MarketValue     float64 `json:"market_value"`     // in the holding's native currency
	MarketValueILS  float64 `json:"market_value_ils"` // normalized to the reporting currency
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}
