package risk

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/holdings"
)

type fakeSnapshots struct {
	snaps []domain.Snapshot
}

func (f *fakeSnapshots) GetAll() ([]domain.Snapshot, error) {
	return f.snaps, nil
}

type fakeHoldings struct {
	valuated []holdings.HoldingWithCalculations
}

func (f *fakeHoldings) GetAllWithCalculations() ([]holdings.HoldingWithCalculations, error) {
	return f.valuated, nil
}

func valuated(cur domain.Currency, value, valueILS float64) holdings.HoldingWithCalculations {
	return holdings.HoldingWithCalculations{
		Holding:        domain.Holding{Currency: cur},
		MarketValue:    value,
		MarketValueILS: valueILS,
	}
}

func monthlySnapshots(values []float64) []domain.Snapshot {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snaps := make([]domain.Snapshot, 0, len(values))
	for i, v := range values {
		snaps = append(snaps, domain.Snapshot{
			Date:            start.AddDate(0, i, 0),
			Trigger:         domain.SnapshotDaily,
			ValueBeforeFlow: v,
			Stocks:          v,
		})
	}
	return snaps
}

func TestPeriodReturns(t *testing.T) {
	t.Run("from breakdown totals", func(t *testing.T) {
		snaps := []domain.Snapshot{
			{Stocks: 800, Cash: 200},
			{Stocks: 900, Cash: 200},
			{Stocks: 1000, Bonds: 100, Cash: 220},
		}
		returns := PeriodReturns(snaps)
		require.Len(t, returns, 2)
		assert.InDelta(t, 0.10, returns[0], 1e-9)
		assert.InDelta(t, 0.20, returns[1], 1e-9)
	})

	t.Run("depleted start skipped", func(t *testing.T) {
		snaps := []domain.Snapshot{
			{Stocks: 0},
			{Stocks: 1000},
			{Stocks: 1050},
		}
		returns := PeriodReturns(snaps)
		require.Len(t, returns, 1)
		assert.InDelta(t, 0.05, returns[0], 1e-9)
	})

	t.Run("out of order snapshots are sorted first", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		snaps := []domain.Snapshot{
			{Date: start.AddDate(0, 1, 0), Stocks: 1100},
			{Date: start, Stocks: 1000},
		}
		returns := PeriodReturns(snaps)
		require.Len(t, returns, 1)
		assert.InDelta(t, 0.10, returns[0], 1e-9)
	})
}

func TestCalculateCurrencyExposure(t *testing.T) {
	// USD holdings valued at rate 4: raw totals stay in dollars.
	exposure := CalculateCurrencyExposure([]holdings.HoldingWithCalculations{
		valuated(domain.CurrencyILS, 6000, 6000),
		valuated(domain.CurrencyUSD, 750, 3000),
		valuated(domain.CurrencyUSD, 250, 1000),
	})

	require.Len(t, exposure, 2)
	byCur := make(map[domain.Currency]CurrencyExposure)
	for _, e := range exposure {
		byCur[e.Currency] = e
	}

	assert.InDelta(t, 6000.0, byCur[domain.CurrencyILS].MarketValue, 1e-9)
	assert.InDelta(t, 6000.0, byCur[domain.CurrencyILS].ValueILS, 1e-9)
	assert.InDelta(t, 60.0, byCur[domain.CurrencyILS].Pct, 1e-9)
	assert.InDelta(t, 1000.0, byCur[domain.CurrencyUSD].MarketValue, 1e-9)
	assert.InDelta(t, 4000.0, byCur[domain.CurrencyUSD].ValueILS, 1e-9)
	assert.InDelta(t, 40.0, byCur[domain.CurrencyUSD].Pct, 1e-9)

	t.Run("empty portfolio", func(t *testing.T) {
		assert.Empty(t, CalculateCurrencyExposure(nil))
	})
}

func TestGetMetrics(t *testing.T) {
	t.Run("short history leaves ratios nil", func(t *testing.T) {
		svc := NewService(
			&fakeSnapshots{snaps: monthlySnapshots([]float64{1000, 1050, 980})},
			&fakeHoldings{valuated: []holdings.HoldingWithCalculations{
				valuated(domain.CurrencyILS, 5000, 5000),
			}},
			0.04, zerolog.Nop())

		m, err := svc.GetMetrics()
		require.NoError(t, err)

		assert.Nil(t, m.SharpeRatio)
		assert.Nil(t, m.SortinoRatio)
		assert.NotNil(t, m.Volatility)
		assert.NotNil(t, m.Drawdown)
		assert.NotNil(t, m.Concentration)
		assert.Equal(t, 2, m.ReturnCount)

		// Jan and Feb 2024 together span 60 days across two intervals.
		require.NotNil(t, m.MeanIntervalDays)
		assert.InDelta(t, 30.0, *m.MeanIntervalDays, 1e-9)
	})

	t.Run("long history produces ratios and drawdown date", func(t *testing.T) {
		values := []float64{
			1000, 1030, 1010, 1060, 1040, 1090,
			1070, 1120, 1000, 1150, 1130, 1180, 1160,
		}
		snaps := monthlySnapshots(values)
		svc := NewService(
			&fakeSnapshots{snaps: snaps},
			&fakeHoldings{valuated: []holdings.HoldingWithCalculations{
				valuated(domain.CurrencyILS, 600, 600),
				valuated(domain.CurrencyUSD, 140, 560),
			}},
			0.04, zerolog.Nop())

		m, err := svc.GetMetrics()
		require.NoError(t, err)

		require.NotNil(t, m.SharpeRatio)
		require.NotNil(t, m.SortinoRatio)
		require.NotNil(t, m.Volatility)
		assert.Equal(t, 12, m.ReturnCount)

		// deepest dip is 1120 -> 1000 at index 8
		require.NotNil(t, m.Drawdown)
		assert.InDelta(t, (1120.0-1000.0)/1120.0*100, m.Drawdown.MaxDrawdownPct, 1e-9)
		require.NotNil(t, m.Drawdown.MaxDrawdownDate)
		assert.Equal(t, snaps[8].Date, *m.Drawdown.MaxDrawdownDate)
	})

	t.Run("concentrated single holding", func(t *testing.T) {
		svc := NewService(
			&fakeSnapshots{},
			&fakeHoldings{valuated: []holdings.HoldingWithCalculations{
				valuated(domain.CurrencyILS, 10000, 10000),
			}},
			0.04, zerolog.Nop())

		m, err := svc.GetMetrics()
		require.NoError(t, err)

		require.NotNil(t, m.Concentration)
		assert.InDelta(t, 10000.0, m.Concentration.HHI, 1e-9)
		assert.True(t, m.Concentration.IsConcentrated)
	})
}
