package holdings

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"

	"github.com/foliotracker/folio/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE holdings (
			id TEXT PRIMARY KEY,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			shares REAL NOT NULL DEFAULT 0,
			currency TEXT NOT NULL,
			group_id TEXT,
			current_price REAL NOT NULL DEFAULT 0,
			last_updated INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			holding_id TEXT NOT NULL REFERENCES holdings(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			date INTEGER NOT NULL,
			shares REAL NOT NULL,
			price_per_share REAL NOT NULL,
			fees REAL NOT NULL DEFAULT 0,
			note TEXT NOT NULL DEFAULT ''
		);
	`)
	require.NoError(t, err)

	return db
}

// fakeRates always returns the same exchange rates
type fakeRates struct {
	rates domain.ExchangeRates
}

func (f *fakeRates) GetRates() (domain.ExchangeRates, error) {
	return f.rates, nil
}

func newTestService(t *testing.T) *Service {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	rates := &fakeRates{rates: domain.ExchangeRates{
		Rates: map[domain.Currency]float64{
			domain.CurrencyUSD: 3.7,
			domain.CurrencyEUR: 4.0,
		},
	}}
	return NewService(repo, rates, zerolog.Nop())
}

func TestValuation(t *testing.T) {
	t.Run("basic gain", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "AAA", Currency: domain.CurrencyILS, CurrentPrice: 150}
		require.NoError(t, svc.Create(&h))
		require.NoError(t, svc.RecordTransaction(&domain.Transaction{
			HoldingID:     h.ID,
			Type:          domain.TransactionBuy,
			Date:          time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Shares:        10,
			PricePerShare: 100,
		}))

		calc, err := svc.GetByID(h.ID)
		require.NoError(t, err)

		assert.InDelta(t, 1000.0, calc.CostBasis, 1e-9)
		assert.InDelta(t, 1500.0, calc.MarketValue, 1e-9)
		assert.InDelta(t, 500.0, calc.GainLoss, 1e-9)
		assert.InDelta(t, 50.0, calc.GainLossPercent, 1e-9)
	})

	t.Run("fees show as loss at flat price", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "BBB", Currency: domain.CurrencyILS, CurrentPrice: 100}
		require.NoError(t, svc.Create(&h))
		require.NoError(t, svc.RecordTransaction(&domain.Transaction{
			HoldingID:     h.ID,
			Type:          domain.TransactionBuy,
			Date:          time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Shares:        10,
			PricePerShare: 100,
			Fees:          15,
		}))

		calc, err := svc.GetByID(h.ID)
		require.NoError(t, err)

		assert.InDelta(t, 1015.0, calc.CostBasis, 1e-9)
		assert.InDelta(t, 1000.0, calc.MarketValue, 1e-9)
		assert.InDelta(t, -15.0, calc.GainLoss, 1e-9)
		assert.Less(t, calc.GainLossPercent, 0.0)
	})

	t.Run("foreign holding converts to reporting currency", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "USD1", Currency: domain.CurrencyUSD, Shares: 10, CurrentPrice: 100}
		require.NoError(t, svc.Create(&h))

		calc, err := svc.GetByID(h.ID)
		require.NoError(t, err)

		assert.InDelta(t, 1000.0, calc.MarketValue, 1e-9)
		assert.InDelta(t, 3700.0, calc.MarketValueILS, 1e-9)
	})

	t.Run("zero cost basis reports zero percent", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "GIFT", Currency: domain.CurrencyILS, Shares: 5, CurrentPrice: 20}
		require.NoError(t, svc.Create(&h))

		calc, err := svc.GetByID(h.ID)
		require.NoError(t, err)

		assert.InDelta(t, 100.0, calc.MarketValue, 1e-9)
		assert.Equal(t, 0.0, calc.GainLossPercent)
	})
}

func TestRecordTransaction(t *testing.T) {
	t.Run("buy and sell adjust shares", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "AAA", Currency: domain.CurrencyILS}
		require.NoError(t, svc.Create(&h))

		require.NoError(t, svc.RecordTransaction(&domain.Transaction{
			HoldingID: h.ID, Type: domain.TransactionBuy,
			Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Shares: 10, PricePerShare: 100,
		}))
		require.NoError(t, svc.RecordTransaction(&domain.Transaction{
			HoldingID: h.ID, Type: domain.TransactionSell,
			Date: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), Shares: 4, PricePerShare: 110,
		}))

		got, err := svc.repo.GetByID(h.ID)
		require.NoError(t, err)
		assert.InDelta(t, 6.0, got.Shares, 1e-9)
		assert.Len(t, got.Transactions, 2)
		assert.InDelta(t, 6.0, SharesFromTransactions(*got), 1e-9)
	})

	t.Run("overselling is rejected", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "AAA", Currency: domain.CurrencyILS, Shares: 3}
		require.NoError(t, svc.Create(&h))

		err := svc.RecordTransaction(&domain.Transaction{
			HoldingID: h.ID, Type: domain.TransactionSell,
			Date: time.Now(), Shares: 5, PricePerShare: 100,
		})
		assert.Error(t, err)
	})

	t.Run("split multiplies shares without changing basis", func(t *testing.T) {
		svc := newTestService(t)

		h := domain.Holding{Symbol: "AAA", Currency: domain.CurrencyILS, CurrentPrice: 50}
		require.NoError(t, svc.Create(&h))
		require.NoError(t, svc.RecordTransaction(&domain.Transaction{
			HoldingID: h.ID, Type: domain.TransactionBuy,
			Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Shares: 10, PricePerShare: 100,
		}))
		require.NoError(t, svc.RecordTransaction(&domain.Transaction{
			HoldingID: h.ID, Type: domain.TransactionSplit,
			Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Shares: 2, PricePerShare: 0,
		}))

		calc, err := svc.GetByID(h.ID)
		require.NoError(t, err)
		assert.InDelta(t, 20.0, calc.Shares, 1e-9)
		assert.InDelta(t, 1000.0, calc.CostBasis, 1e-9)
	})
}

func TestRepositoryCRUD(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	h := domain.Holding{Symbol: "VTI", Name: "Total Market", Shares: 12, Currency: domain.CurrencyUSD, CurrentPrice: 250}
	require.NoError(t, repo.Create(&h))
	require.NotEmpty(t, h.ID)

	got, err := repo.GetByID(h.ID)
	require.NoError(t, err)
	assert.Equal(t, "VTI", got.Symbol)
	assert.Equal(t, domain.CurrencyUSD, got.Currency)

	got.Shares = 15
	require.NoError(t, repo.Update(got))

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDelta(t, 15.0, all[0].Shares, 1e-9)

	require.NoError(t, repo.Delete(h.ID))
	_, err = repo.GetByID(h.ID)
	assert.Error(t, err)
}
