package holdings

import (
	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/currency"
)

// CostBasis computes the total acquisition cost of a holding: the sum over
// all buy transactions of shares*price + fees. Sells and dividends do not
// reduce the basis in this model; realized-gain accounting lives in the tax
// module, which matches sales against individual lots.
func CostBasis(h domain.Holding) float64 {
	var basis float64
	for _, tx := range h.Transactions {
		if tx.Type == domain.TransactionBuy {
			basis += tx.Shares*tx.PricePerShare + tx.Fees
		}
	}
	return basis
}

// SharesFromTransactions derives the share count implied by the transaction
// log: buys add, sells subtract. The stored Shares field stays authoritative
// for valuation; this is the reconciliation view.
func SharesFromTransactions(h domain.Holding) float64 {
	var shares float64
	for _, tx := range h.Transactions {
		switch tx.Type {
		case domain.TransactionBuy:
			shares += tx.Shares
		case domain.TransactionSell:
			shares -= tx.Shares
		}
	}
	return shares
}

// Valuate computes cost basis, market value, normalized market value, and
// gain/loss for a holding. Market value uses the stored share count, not the
// transaction-derived one. A zero cost basis yields a 0% gain, not a
// division error.
func Valuate(h domain.Holding, rates domain.ExchangeRates) HoldingWithCalculations {
	costBasis := CostBasis(h)
	marketValue := h.Shares * h.CurrentPrice
	gainLoss := marketValue - costBasis

	gainLossPercent := 0.0
	if costBasis != 0 {
		gainLossPercent = gainLoss / costBasis * 100
	}

	return HoldingWithCalculations{
		Holding:         h,
		CostBasis:       costBasis,
		MarketValue:     marketValue,
		MarketValueILS:  currency.Convert(marketValue, h.Currency, rates),
		GainLoss:        gainLoss,
		GainLossPercent: gainLossPercent,
	}
}

// ValuateAll valuates a slice of holdings against the same rate table.
func ValuateAll(hs []domain.Holding, rates domain.ExchangeRates) []HoldingWithCalculations {
	result := make([]HoldingWithCalculations, len(hs))
	for i, h := range hs {
		result[i] = Valuate(h, rates)
	}
	return result
}
