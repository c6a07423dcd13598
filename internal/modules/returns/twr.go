// Package returns computes portfolio performance from the snapshot series.
// Two measures are provided: time-weighted return, which neutralizes the
// timing of deposits and withdrawals, and money-weighted return (XIRR),
// which accounts for it.
package returns

import (
	"sort"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/pkg/formulas"
)

// TWRResult holds a time-weighted return calculation. Percentages.
type TWRResult struct {
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	PeriodDays       int     `json:"period_days"`
	Periods          int     `json:"periods"`
}

// CalculateTWR chains sub-period growth factors between consecutive
// snapshots. Each sub-period starts at the previous snapshot's post-flow
// value and ends at the next snapshot's pre-flow value, so external flows
// never contaminate the growth factors. Returns nil with fewer than two
// snapshots. The input is sorted by date before use.
func CalculateTWR(snaps []domain.Snapshot) *TWRResult {
	if len(snaps) < 2 {
		return nil
	}
	snaps = sortedByDate(snaps)

	cumulative := 1.0
	for i := 1; i < len(snaps); i++ {
		start := snaps[i-1].ValueBeforeFlow + snaps[i-1].CashFlow
		end := snaps[i].ValueBeforeFlow

		// A depleted portfolio contributes no growth information.
		if start <= 0 {
			continue
		}
		cumulative *= end / start
	}

	spanDays := int(snaps[len(snaps)-1].Date.Sub(snaps[0].Date).Hours() / 24)
	if spanDays < 1 {
		spanDays = 1
	}

	return &TWRResult{
		TotalReturn:      (cumulative - 1) * 100,
		AnnualizedReturn: formulas.AnnualizedReturn(cumulative, float64(spanDays)) * 100,
		PeriodDays:       spanDays,
		Periods:          len(snaps) - 1,
	}
}

// BuildCashFlows converts a snapshot series into the investor cash flow
// schedule XIRR expects: the opening value is an outflow, every external
// flow is an outflow or inflow as seen from the investor's pocket, and the
// closing pre-flow value is an inflow. A flow on the final snapshot nets
// against the closing position, so the terminal amount is the pre-flow
// value rather than the post-flow one.
func BuildCashFlows(snaps []domain.Snapshot) []formulas.CashFlow {
	if len(snaps) < 2 {
		return nil
	}
	snaps = sortedByDate(snaps)

	first, last := snaps[0], snaps[len(snaps)-1]

	flows := []formulas.CashFlow{{
		Date:   first.Date,
		Amount: -(first.ValueBeforeFlow + first.CashFlow),
	}}

	for _, s := range snaps[1 : len(snaps)-1] {
		if s.CashFlow != 0 {
			flows = append(flows, formulas.CashFlow{Date: s.Date, Amount: -s.CashFlow})
		}
	}

	flows = append(flows, formulas.CashFlow{
		Date:   last.Date,
		Amount: last.ValueBeforeFlow,
	})

	return flows
}

func sortedByDate(snaps []domain.Snapshot) []domain.Snapshot {
	sorted := make([]domain.Snapshot, len(snaps))
	copy(sorted, snaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
