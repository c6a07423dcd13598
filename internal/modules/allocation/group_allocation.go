package allocation

import (
	"math"
	"sort"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/holdings"
)

// GroupAllocation represents the current versus target allocation of a
// single group. Values are in ILS, percentages in [0, 100].
type GroupAllocation struct {
	GroupID         string  `json:"group_id"`
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	TargetPct       float64 `json:"target_pct"`
	CurrentPct      float64 `json:"current_pct"`
	CurrentValue    float64 `json:"current_value"`
	Deviation       float64 `json:"deviation"`
	DeviationValue  float64 `json:"deviation_value"`
	RebalanceNeeded bool    `json:"rebalance_needed"`
}

// AllocationResult is the portfolio-wide allocation breakdown.
type AllocationResult struct {
	TotalValue      float64           `json:"total_value"`
	Groups          []GroupAllocation `json:"groups"`
	UngroupedValue  float64           `json:"ungrouped_value"`
	UngroupedPct    float64           `json:"ungrouped_pct"`
	RebalanceNeeded bool              `json:"rebalance_needed"`
}

// CalculateGroupAllocation aggregates valuated holdings by their groups and
// compares against each group's target. Holdings without a group count
// toward the total but appear under the ungrouped bucket rather than any
// group. An empty portfolio yields zero percentages and no rebalance flag.
func CalculateGroupAllocation(
	groups []domain.Group,
	valuated []holdings.HoldingWithCalculations,
	threshold float64,
) AllocationResult {
	groupValues := make(map[string]float64)
	var totalValue, ungroupedValue float64

	for _, h := range valuated {
		totalValue += h.MarketValueILS
		if h.GroupID == "" {
			ungroupedValue += h.MarketValueILS
			continue
		}
		groupValues[h.GroupID] += h.MarketValueILS
	}

	result := AllocationResult{
		TotalValue:     round(totalValue, 2),
		UngroupedValue: round(ungroupedValue, 2),
	}

	for _, g := range groups {
		currentValue := groupValues[g.ID]

		var currentPct float64
		if totalValue > 0 {
			currentPct = currentValue / totalValue * 100
		}

		deviation := currentPct - g.TargetPct
		needed := totalValue > 0 && math.Abs(deviation) > threshold

		result.Groups = append(result.Groups, GroupAllocation{
			GroupID:         g.ID,
			Name:            g.Name,
			Color:           g.Color,
			TargetPct:       g.TargetPct,
			CurrentPct:      round(currentPct, 4),
			CurrentValue:    round(currentValue, 2),
			Deviation:       round(deviation, 4),
			DeviationValue:  round(deviation/100*totalValue, 2),
			RebalanceNeeded: needed,
		})
		if needed {
			result.RebalanceNeeded = true
		}
	}

	if totalValue > 0 {
		result.UngroupedPct = round(ungroupedValue/totalValue*100, 4)
	}

	// Sort by name for consistent output
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Name < result.Groups[j].Name
	})

	return result
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
