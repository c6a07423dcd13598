// Package tax matches sales against purchase lots and aggregates realized
// gains for tax reporting. Matching is first-in-first-out: the oldest open
// lot is consumed first, and consumed shares stay consumed for every later
// sale.
package tax

import (
	"sort"
	"time"

	"github.com/foliotracker/folio/internal/domain"
)

// LongTermHoldingDays is the holding period after which a gain counts as
// long-term.
const LongTermHoldingDays = 365

// Lot is an open purchase lot with shares still available for matching.
// CostBasis covers the remaining shares, with purchase fees prorated in.
type Lot struct {
	BuyDate   time.Time `json:"buy_date"`
	Shares    float64   `json:"shares"`
	CostBasis float64   `json:"cost_basis"`
}

// MatchedLot records the slice of a lot consumed by one sale.
type MatchedLot struct {
	BuyDate   time.Time `json:"buy_date"`
	Shares    float64   `json:"shares"`
	CostBasis float64   `json:"cost_basis"`
}

// SaleReport is one sale with its matched basis and realized gain.
// Proceeds are net of sale fees. LongTerm reflects the earliest matched
// lot's holding period.
type SaleReport struct {
	SaleDate    time.Time    `json:"sale_date"`
	Shares      float64      `json:"shares"`
	Proceeds    float64      `json:"proceeds"`
	CostBasis   float64      `json:"cost_basis"`
	Gain        float64      `json:"gain"`
	LongTerm    bool         `json:"long_term"`
	MatchedLots []MatchedLot `json:"matched_lots"`
}

// MatchResult is the outcome of running the matcher over one holding's
// transaction log.
type MatchResult struct {
	Sales    []SaleReport `json:"sales"`
	OpenLots []Lot        `json:"open_lots"`
}

// MatchSales replays a holding's transaction log in date order, building
// lots from buys and consuming them FIFO on sells. Buys dated after a sale
// never match it. Shares sold beyond all matchable lots carry zero basis,
// so the full proceeds count as gain. Splits scale open lot share counts
// without changing their basis.
func MatchSales(transactions []domain.Transaction) MatchResult {
	txs := make([]domain.Transaction, len(transactions))
	copy(txs, transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	var lots []Lot
	var sales []SaleReport

	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionBuy:
			lots = append(lots, Lot{
				BuyDate:   tx.Date,
				Shares:    tx.Shares,
				CostBasis: tx.Shares*tx.PricePerShare + tx.Fees,
			})

		case domain.TransactionSplit:
			if tx.Shares <= 0 {
				continue
			}
			for i := range lots {
				lots[i].Shares *= tx.Shares
			}

		case domain.TransactionSell:
			sale := SaleReport{
				SaleDate: tx.Date,
				Shares:   tx.Shares,
				Proceeds: tx.Shares*tx.PricePerShare - tx.Fees,
			}

			remaining := tx.Shares
			for i := range lots {
				if remaining <= 0 {
					break
				}
				lot := &lots[i]
				if lot.Shares <= 0 || lot.BuyDate.After(tx.Date) {
					continue
				}

				take := remaining
				if take > lot.Shares {
					take = lot.Shares
				}

				basis := lot.CostBasis * (take / lot.Shares)
				lot.CostBasis -= basis
				lot.Shares -= take
				remaining -= take

				sale.MatchedLots = append(sale.MatchedLots, MatchedLot{
					BuyDate:   lot.BuyDate,
					Shares:    take,
					CostBasis: basis,
				})
				sale.CostBasis += basis
			}

			// Unmatched remainder sells at zero basis.
			if remaining > 0 {
				sale.MatchedLots = append(sale.MatchedLots, MatchedLot{
					BuyDate: tx.Date,
					Shares:  remaining,
				})
			}

			sale.Gain = sale.Proceeds - sale.CostBasis
			if len(sale.MatchedLots) > 0 {
				earliest := sale.MatchedLots[0].BuyDate
				sale.LongTerm = tx.Date.Sub(earliest).Hours() >= LongTermHoldingDays*24
			}

			sales = append(sales, sale)
		}
	}

	var open []Lot
	for _, lot := range lots {
		if lot.Shares > 0 {
			open = append(open, lot)
		}
	}

	return MatchResult{Sales: sales, OpenLots: open}
}

// DividendAmount returns the gross cash amount of a dividend transaction.
// Per-share dividends carry the share count and per-share rate; flat
// payouts carry the amount in PricePerShare with zero shares.
func DividendAmount(tx domain.Transaction) float64 {
	if tx.Shares > 0 {
		return tx.Shares * tx.PricePerShare
	}
	return tx.PricePerShare
}
