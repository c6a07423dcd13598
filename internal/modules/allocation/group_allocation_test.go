package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/holdings"
)

func valuatedHolding(groupID string, valueILS float64) holdings.HoldingWithCalculations {
	return holdings.HoldingWithCalculations{
		Holding:        domain.Holding{GroupID: groupID},
		MarketValueILS: valueILS,
	}
}

func TestCalculateGroupAllocation(t *testing.T) {
	groups := []domain.Group{
		{ID: "g1", Name: "Stocks", TargetPct: 60},
		{ID: "g2", Name: "REITs", TargetPct: 40},
	}

	t.Run("deviation and rebalance flags", func(t *testing.T) {
		valuated := []holdings.HoldingWithCalculations{
			valuatedHolding("g1", 7000),
			valuatedHolding("g2", 3000),
		}

		result := CalculateGroupAllocation(groups, valuated, 5.0)

		assert.InDelta(t, 10000.0, result.TotalValue, 1e-9)
		assert.Len(t, result.Groups, 2)

		// sorted by name: REITs first
		reits, stocks := result.Groups[0], result.Groups[1]
		assert.Equal(t, "REITs", reits.Name)
		assert.InDelta(t, 30.0, reits.CurrentPct, 1e-9)
		assert.InDelta(t, -10.0, reits.Deviation, 1e-9)
		assert.InDelta(t, -1000.0, reits.DeviationValue, 1e-9)
		assert.True(t, reits.RebalanceNeeded)

		assert.Equal(t, "Stocks", stocks.Name)
		assert.InDelta(t, 70.0, stocks.CurrentPct, 1e-9)
		assert.InDelta(t, 10.0, stocks.Deviation, 1e-9)
		assert.InDelta(t, 1000.0, stocks.DeviationValue, 1e-9)
		assert.True(t, stocks.RebalanceNeeded)

		assert.True(t, result.RebalanceNeeded)
	})

	t.Run("within threshold is not flagged", func(t *testing.T) {
		valuated := []holdings.HoldingWithCalculations{
			valuatedHolding("g1", 6200),
			valuatedHolding("g2", 3800),
		}

		result := CalculateGroupAllocation(groups, valuated, 5.0)
		assert.False(t, result.RebalanceNeeded)
		for _, g := range result.Groups {
			assert.False(t, g.RebalanceNeeded)
		}
	})

	t.Run("deviation exactly at threshold is not flagged", func(t *testing.T) {
		// Rebalance triggers only when the deviation exceeds the threshold.
		valuated := []holdings.HoldingWithCalculations{
			valuatedHolding("g1", 6500),
			valuatedHolding("g2", 3500),
		}

		result := CalculateGroupAllocation(groups, valuated, 5.0)
		assert.False(t, result.RebalanceNeeded)
	})

	t.Run("deviation just past threshold is flagged", func(t *testing.T) {
		valuated := []holdings.HoldingWithCalculations{
			valuatedHolding("g1", 6600),
			valuatedHolding("g2", 3400),
		}

		result := CalculateGroupAllocation(groups, valuated, 5.0)
		assert.True(t, result.RebalanceNeeded)
	})

	t.Run("ungrouped counts toward total but no group", func(t *testing.T) {
		valuated := []holdings.HoldingWithCalculations{
			valuatedHolding("g1", 6000),
			valuatedHolding("", 4000),
		}

		result := CalculateGroupAllocation(groups, valuated, 5.0)

		assert.InDelta(t, 10000.0, result.TotalValue, 1e-9)
		assert.InDelta(t, 4000.0, result.UngroupedValue, 1e-9)
		assert.InDelta(t, 40.0, result.UngroupedPct, 1e-9)

		var groupSum float64
		for _, g := range result.Groups {
			groupSum += g.CurrentValue
		}
		assert.LessOrEqual(t, groupSum, result.TotalValue)
	})

	t.Run("empty portfolio is degenerate but quiet", func(t *testing.T) {
		result := CalculateGroupAllocation(groups, nil, 5.0)

		assert.Equal(t, 0.0, result.TotalValue)
		assert.False(t, result.RebalanceNeeded)
		for _, g := range result.Groups {
			assert.Equal(t, 0.0, g.CurrentPct)
			assert.InDelta(t, -g.TargetPct, g.Deviation, 1e-9)
			assert.Equal(t, 0.0, g.DeviationValue)
			assert.False(t, g.RebalanceNeeded)
		}
	})
}
