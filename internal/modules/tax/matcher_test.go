package tax

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliotracker/folio/internal/domain"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func buy(date time.Time, shares, price float64) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionBuy, Date: date, Shares: shares, PricePerShare: price}
}

func sell(date time.Time, shares, price float64) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionSell, Date: date, Shares: shares, PricePerShare: price}
}

func TestMatchSales(t *testing.T) {
	t.Run("sale spans two lots", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			buy(day(1), 10, 100),
			buy(day(200), 10, 120),
			sell(day(300), 15, 150),
		})

		require.Len(t, result.Sales, 1)
		sale := result.Sales[0]

		assert.InDelta(t, 2250.0, sale.Proceeds, 1e-9)
		assert.InDelta(t, 1600.0, sale.CostBasis, 1e-9)
		assert.InDelta(t, 650.0, sale.Gain, 1e-9)
		assert.False(t, sale.LongTerm)

		require.Len(t, sale.MatchedLots, 2)
		assert.InDelta(t, 10.0, sale.MatchedLots[0].Shares, 1e-9)
		assert.InDelta(t, 1000.0, sale.MatchedLots[0].CostBasis, 1e-9)
		assert.InDelta(t, 5.0, sale.MatchedLots[1].Shares, 1e-9)
		assert.InDelta(t, 600.0, sale.MatchedLots[1].CostBasis, 1e-9)

		require.Len(t, result.OpenLots, 1)
		assert.InDelta(t, 5.0, result.OpenLots[0].Shares, 1e-9)
		assert.InDelta(t, 600.0, result.OpenLots[0].CostBasis, 1e-9)
	})

	t.Run("lots stay depleted across sales", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			buy(day(1), 10, 100),
			buy(day(10), 10, 200),
			sell(day(100), 10, 150),
			sell(day(200), 10, 150),
		})

		require.Len(t, result.Sales, 2)
		assert.InDelta(t, 1000.0, result.Sales[0].CostBasis, 1e-9)
		assert.InDelta(t, 2000.0, result.Sales[1].CostBasis, 1e-9)
		assert.Empty(t, result.OpenLots)
	})

	t.Run("buys after the sale date never match", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			buy(day(1), 5, 100),
			sell(day(50), 5, 120),
			buy(day(60), 5, 80),
		})

		require.Len(t, result.Sales, 1)
		assert.InDelta(t, 500.0, result.Sales[0].CostBasis, 1e-9)
		require.Len(t, result.OpenLots, 1)
		assert.Equal(t, day(60), result.OpenLots[0].BuyDate)
	})

	t.Run("unmatched shares carry zero basis", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			buy(day(1), 5, 100),
			sell(day(50), 8, 110),
		})

		require.Len(t, result.Sales, 1)
		sale := result.Sales[0]
		assert.InDelta(t, 500.0, sale.CostBasis, 1e-9)
		assert.InDelta(t, 880.0-500.0, sale.Gain, 1e-9)
	})

	t.Run("long term at a year from earliest matched lot", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			buy(day(0), 10, 100),
			sell(day(365), 10, 120),
		})
		require.Len(t, result.Sales, 1)
		assert.True(t, result.Sales[0].LongTerm)

		result = MatchSales([]domain.Transaction{
			buy(day(0), 10, 100),
			sell(day(364), 10, 120),
		})
		assert.False(t, result.Sales[0].LongTerm)
	})

	t.Run("purchase fees enter basis, sale fees cut proceeds", func(t *testing.T) {
		txs := []domain.Transaction{
			{Type: domain.TransactionBuy, Date: day(1), Shares: 10, PricePerShare: 100, Fees: 20},
			{Type: domain.TransactionSell, Date: day(100), Shares: 10, PricePerShare: 110, Fees: 15},
		}
		result := MatchSales(txs)

		require.Len(t, result.Sales, 1)
		sale := result.Sales[0]
		assert.InDelta(t, 1085.0, sale.Proceeds, 1e-9)
		assert.InDelta(t, 1020.0, sale.CostBasis, 1e-9)
		assert.InDelta(t, 65.0, sale.Gain, 1e-9)
	})

	t.Run("split scales open lots without changing basis", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			buy(day(1), 10, 100),
			{Type: domain.TransactionSplit, Date: day(50), Shares: 2},
			sell(day(100), 10, 60),
		})

		require.Len(t, result.Sales, 1)
		// 10 of 20 split shares sold, half the 1000 basis
		assert.InDelta(t, 500.0, result.Sales[0].CostBasis, 1e-9)
		require.Len(t, result.OpenLots, 1)
		assert.InDelta(t, 10.0, result.OpenLots[0].Shares, 1e-9)
		assert.InDelta(t, 500.0, result.OpenLots[0].CostBasis, 1e-9)
	})

	t.Run("out of order input is sorted by date", func(t *testing.T) {
		result := MatchSales([]domain.Transaction{
			sell(day(300), 5, 150),
			buy(day(1), 10, 100),
		})

		require.Len(t, result.Sales, 1)
		assert.InDelta(t, 500.0, result.Sales[0].CostBasis, 1e-9)
	})
}

func TestDividendAmount(t *testing.T) {
	perShare := domain.Transaction{Type: domain.TransactionDividend, Shares: 10, PricePerShare: 1.5}
	assert.InDelta(t, 15.0, DividendAmount(perShare), 1e-9)

	flat := domain.Transaction{Type: domain.TransactionDividend, Shares: 0, PricePerShare: 42}
	assert.InDelta(t, 42.0, DividendAmount(flat), 1e-9)
}
