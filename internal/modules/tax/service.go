package tax

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// HoldingSource supplies holdings with their transaction logs.
type HoldingSource interface {
	GetAll() ([]domain.Holding, error)
	GetByID(id string) (*domain.Holding, error)
}

// HoldingSales groups one holding's sale reports.
type HoldingSales struct {
	HoldingID string          `json:"holding_id"`
	Symbol    string          `json:"symbol"`
	Currency  domain.Currency `json:"currency"`
	Sales     []SaleReport    `json:"sales"`
}

// DividendEvent is a dividend payout counted as taxable income.
type DividendEvent struct {
	HoldingID string          `json:"holding_id"`
	Symbol    string          `json:"symbol"`
	Currency  domain.Currency `json:"currency"`
	Date      time.Time       `json:"date"`
	Amount    float64         `json:"amount"`
}

// Report aggregates realized gains and dividend income, optionally
// narrowed to one tax year. Amounts are in each holding's own currency.
type Report struct {
	Year           int             `json:"year,omitempty"`
	Holdings       []HoldingSales  `json:"holdings"`
	Dividends      []DividendEvent `json:"dividends"`
	ShortTermGain  float64         `json:"short_term_gain"`
	LongTermGain   float64         `json:"long_term_gain"`
	TotalGain      float64         `json:"total_gain"`
	TotalDividends float64         `json:"total_dividends"`
}

// Service produces tax reports from holding transaction logs.
type Service struct {
	holdings HoldingSource
	log      zerolog.Logger
}

// NewService creates a new tax service
func NewService(holdings HoldingSource, log zerolog.Logger) *Service {
	return &Service{
		holdings: holdings,
		log:      log.With().Str("service", "tax").Logger(),
	}
}

// GetReport matches every holding's full transaction log, then narrows
// sales and dividends to the given year. Year zero reports all time.
// Matching always runs over the whole log so lots consumed by earlier
// years stay consumed.
func (s *Service) GetReport(year int) (*Report, error) {
	list, err := s.holdings.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	report := &Report{Year: year}

	for _, h := range list {
		result := MatchSales(h.Transactions)

		var sales []SaleReport
		for _, sale := range result.Sales {
			if year != 0 && sale.SaleDate.Year() != year {
				continue
			}
			sales = append(sales, sale)

			report.TotalGain += sale.Gain
			if sale.LongTerm {
				report.LongTermGain += sale.Gain
			} else {
				report.ShortTermGain += sale.Gain
			}
		}
		if len(sales) > 0 {
			report.Holdings = append(report.Holdings, HoldingSales{
				HoldingID: h.ID,
				Symbol:    h.Symbol,
				Currency:  h.Currency,
				Sales:     sales,
			})
		}

		for _, tx := range h.Transactions {
			if tx.Type != domain.TransactionDividend {
				continue
			}
			if year != 0 && tx.Date.Year() != year {
				continue
			}
			amount := DividendAmount(tx)
			report.Dividends = append(report.Dividends, DividendEvent{
				HoldingID: h.ID,
				Symbol:    h.Symbol,
				Currency:  h.Currency,
				Date:      tx.Date,
				Amount:    amount,
			})
			report.TotalDividends += amount
		}
	}

	return report, nil
}

// GetOpenLots returns the unmatched purchase lots of one holding.
func (s *Service) GetOpenLots(holdingID string) ([]Lot, error) {
	h, err := s.holdings.GetByID(holdingID)
	if err != nil {
		return nil, err
	}
	return MatchSales(h.Transactions).OpenLots, nil
}
