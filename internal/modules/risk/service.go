// Package risk computes portfolio risk metrics: volatility, risk-adjusted
// return ratios, drawdown, concentration and currency exposure.
package risk

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/holdings"
	"github.com/foliotracker/folio/pkg/formulas"
)

// SnapshotSource supplies the snapshot series for risk calculations.
type SnapshotSource interface {
	GetAll() ([]domain.Snapshot, error)
}

// HoldingsProvider supplies valuated holdings for concentration and
// exposure calculations.
type HoldingsProvider interface {
	GetAllWithCalculations() ([]holdings.HoldingWithCalculations, error)
}

// DrawdownResult is the portfolio drawdown with the date it bottomed.
type DrawdownResult struct {
	MaxDrawdownPct     float64    `json:"max_drawdown_pct"`
	MaxDrawdownDate    *time.Time `json:"max_drawdown_date,omitempty"`
	CurrentDrawdownPct float64    `json:"current_drawdown_pct"`
	PeakValue          float64    `json:"peak_value"`
	CurrentValue       float64    `json:"current_value"`
}

// CurrencyExposure is the portfolio value held in one currency.
// MarketValue is in the currency itself, ValueILS and Pct are normalized.
type CurrencyExposure struct {
	Currency    domain.Currency `json:"currency"`
	MarketValue float64         `json:"market_value"`
	ValueILS    float64         `json:"value_ils"`
	Pct         float64         `json:"pct"`
}

// Metrics aggregates all risk analytics. Ratio pointers are nil when the
// snapshot history is too short to support them.
type Metrics struct {
	Volatility       *float64                `json:"volatility,omitempty"`
	SharpeRatio      *float64                `json:"sharpe_ratio,omitempty"`
	SortinoRatio     *float64                `json:"sortino_ratio,omitempty"`
	Drawdown         *DrawdownResult         `json:"drawdown,omitempty"`
	Concentration    *formulas.Concentration `json:"concentration,omitempty"`
	CurrencyExposure []CurrencyExposure      `json:"currency_exposure"`
	ReturnCount      int                     `json:"return_count"`
	MeanIntervalDays *float64                `json:"mean_interval_days,omitempty"`
}

// Service computes risk metrics over snapshots and holdings.
type Service struct {
	snapshots    SnapshotSource
	holdings     HoldingsProvider
	riskFreeRate float64
	log          zerolog.Logger
}

// NewService creates a new risk service. riskFreeRate is annual, as a
// fraction (0.04 for 4%).
func NewService(snapshots SnapshotSource, holdings HoldingsProvider, riskFreeRate float64, log zerolog.Logger) *Service {
	return &Service{
		snapshots:    snapshots,
		holdings:     holdings,
		riskFreeRate: riskFreeRate,
		log:          log.With().Str("service", "risk").Logger(),
	}
}

// GetMetrics computes the full risk picture. Metrics that lack data come
// back nil rather than failing the whole request.
func (s *Service) GetMetrics() (*Metrics, error) {
	snaps, err := s.snapshots.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}

	valuated, err := s.holdings.GetAllWithCalculations()
	if err != nil {
		return nil, fmt.Errorf("failed to get valuated holdings: %w", err)
	}

	snaps = sortedByDate(snaps)
	returns := PeriodReturns(snaps)

	m := &Metrics{
		SharpeRatio:      formulas.CalculateSharpeRatio(returns, s.riskFreeRate),
		SortinoRatio:     formulas.CalculateSortinoRatio(returns, s.riskFreeRate, 0),
		Drawdown:         calculateDrawdown(snaps),
		CurrencyExposure: CalculateCurrencyExposure(valuated),
		ReturnCount:      len(returns),
	}

	// The annualization factors assume monthly cadence; reporting the
	// observed mean interval lets callers judge how well that holds.
	if len(snaps) >= 2 {
		span := snaps[len(snaps)-1].Date.Sub(snaps[0].Date).Hours() / 24
		interval := span / float64(len(snaps)-1)
		m.MeanIntervalDays = &interval
	}

	if len(returns) >= 2 {
		vol := formulas.AnnualizedVolatility(returns)
		m.Volatility = &vol
	}

	if len(valuated) > 0 {
		values := make([]float64, 0, len(valuated))
		for _, h := range valuated {
			values = append(values, h.MarketValueILS)
		}
		conc := formulas.CalculateConcentration(values)
		m.Concentration = &conc
	}

	return m, nil
}

// PeriodReturns derives period returns from the stocks/bonds/cash totals
// of consecutive snapshots. The input is sorted by date before use; periods
// starting from a depleted portfolio are skipped.
func PeriodReturns(snaps []domain.Snapshot) []float64 {
	snaps = sortedByDate(snaps)
	var returns []float64
	for i := 1; i < len(snaps); i++ {
		prev := snaps[i-1].TotalValue()
		if prev <= 0 {
			continue
		}
		returns = append(returns, snaps[i].TotalValue()/prev-1)
	}
	return returns
}

// CalculateCurrencyExposure sums holding values per native currency, both
// raw and normalized, and derives percentages from the normalized total.
func CalculateCurrencyExposure(valuated []holdings.HoldingWithCalculations) []CurrencyExposure {
	rawByCurrency := make(map[domain.Currency]float64)
	ilsByCurrency := make(map[domain.Currency]float64)
	var total float64
	for _, h := range valuated {
		rawByCurrency[h.Currency] += h.MarketValue
		ilsByCurrency[h.Currency] += h.MarketValueILS
		total += h.MarketValueILS
	}

	var result []CurrencyExposure
	for _, cur := range domain.Currencies {
		value, ok := ilsByCurrency[cur]
		if !ok {
			continue
		}
		exposure := CurrencyExposure{
			Currency:    cur,
			MarketValue: rawByCurrency[cur],
			ValueILS:    value,
		}
		if total > 0 {
			exposure.Pct = value / total * 100
		}
		result = append(result, exposure)
	}

	return result
}

func sortedByDate(snaps []domain.Snapshot) []domain.Snapshot {
	sorted := make([]domain.Snapshot, len(snaps))
	copy(sorted, snaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

func calculateDrawdown(snaps []domain.Snapshot) *DrawdownResult {
	values := make([]float64, 0, len(snaps))
	for _, s := range snaps {
		values = append(values, s.TotalValue())
	}

	metrics := formulas.CalculateDrawdownMetrics(values)
	if metrics == nil {
		return nil
	}

	result := &DrawdownResult{
		MaxDrawdownPct:     metrics.MaxDrawdown * 100,
		CurrentDrawdownPct: metrics.CurrentDrawdown * 100,
		PeakValue:          metrics.PeakValue,
		CurrentValue:       metrics.CurrentValue,
	}
	if metrics.MaxDrawdown > 0 {
		date := snaps[metrics.MaxDrawdownAt].Date
		result.MaxDrawdownDate = &date
	}

	return result
}
