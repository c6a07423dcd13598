package currency

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
		CREATE TABLE exchange_rates (
			currency TEXT PRIMARY KEY,
			rate REAL NOT NULL,
			last_updated INTEGER NOT NULL DEFAULT 0
		)
	`)
	require.NoError(t, err)

	return db
}

func testRates() domain.ExchangeRates {
	return domain.ExchangeRates{
		Rates: map[domain.Currency]float64{
			domain.CurrencyUSD: 3.7,
			domain.CurrencyEUR: 4.0,
		},
	}
}

func TestConvert(t *testing.T) {
	rates := testRates()

	t.Run("reporting currency is identity", func(t *testing.T) {
		assert.Equal(t, 123.45, Convert(123.45, domain.CurrencyILS, rates))
	})

	t.Run("foreign currency multiplies by rate", func(t *testing.T) {
		assert.InDelta(t, 370.0, Convert(100, domain.CurrencyUSD, rates), 1e-9)
		assert.InDelta(t, 400.0, Convert(100, domain.CurrencyEUR, rates), 1e-9)
	})

	t.Run("zero amount", func(t *testing.T) {
		assert.Equal(t, 0.0, Convert(0, domain.CurrencyUSD, rates))
	})
}

// fakeRateSource returns fixed rates for tests
type fakeRateSource struct {
	rates map[domain.Currency]float64
	err   error
}

func (f *fakeRateSource) GetRate(from, to domain.Currency) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rates[from], nil
}

func TestServiceRefreshRates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	source := &fakeRateSource{rates: map[domain.Currency]float64{
		domain.CurrencyUSD: 3.65,
		domain.CurrencyEUR: 3.95,
	}}
	svc := NewService(repo, source, zerolog.Nop())

	require.NoError(t, svc.RefreshRates())

	rates, err := svc.GetRates()
	require.NoError(t, err)
	assert.InDelta(t, 3.65, rates.Rates[domain.CurrencyUSD], 1e-9)
	assert.InDelta(t, 3.95, rates.Rates[domain.CurrencyEUR], 1e-9)
	assert.False(t, rates.LastUpdated.IsZero())

	// The reporting currency is implicit, never stored.
	_, ok := rates.Rates[domain.CurrencyILS]
	assert.False(t, ok)
	assert.Equal(t, 1.0, rates.Rate(domain.CurrencyILS))
}

func TestServiceConvert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	require.NoError(t, repo.Upsert(domain.CurrencyUSD, 3.5, time.Now()))

	svc := NewService(repo, nil, zerolog.Nop())

	converted, err := svc.Convert(200, domain.CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 700.0, converted, 1e-9)
}

func TestRepositoryUpsertReplaces(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())

	require.NoError(t, repo.Upsert(domain.CurrencyUSD, 3.5, time.Unix(1000, 0)))
	require.NoError(t, repo.Upsert(domain.CurrencyUSD, 3.8, time.Unix(2000, 0)))

	rates, err := repo.GetAll()
	require.NoError(t, err)
	assert.InDelta(t, 3.8, rates.Rates[domain.CurrencyUSD], 1e-9)
	assert.Equal(t, time.Unix(2000, 0).UTC(), rates.LastUpdated)
}
