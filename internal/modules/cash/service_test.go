package cash

import (
	"database/sql"
	"testing"

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
		CREATE TABLE cash_accounts (
			currency TEXT PRIMARY KEY,
			balance REAL NOT NULL DEFAULT 0
		);
		CREATE TABLE cash_transactions (
			id TEXT PRIMARY KEY,
			currency TEXT NOT NULL,
			type TEXT NOT NULL,
			amount REAL NOT NULL,
			date INTEGER NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			related_holding_id TEXT
		);
	`)
	require.NoError(t, err)

	return db
}

type fakeRates struct{}

func (f *fakeRates) GetRates() (domain.ExchangeRates, error) {
	return domain.ExchangeRates{Rates: map[domain.Currency]float64{
		domain.CurrencyUSD: 3.7,
		domain.CurrencyEUR: 4.0,
	}}, nil
}

type recordingSnapshotter struct {
	triggers []domain.SnapshotTrigger
	flows    []float64
}

func (r *recordingSnapshotter) CreateSnapshot(trigger domain.SnapshotTrigger, flowILS float64) (*domain.Snapshot, error) {
	r.triggers = append(r.triggers, trigger)
	r.flows = append(r.flows, flowILS)
	return &domain.Snapshot{Trigger: trigger, CashFlow: flowILS}, nil
}

func newTestService(t *testing.T) (*Service, *recordingSnapshotter) {
	svc := NewService(NewRepository(setupTestDB(t), zerolog.Nop()), &fakeRates{}, zerolog.Nop())
	snap := &recordingSnapshotter{}
	svc.SetSnapshotter(snap)
	return svc, snap
}

func TestDepositAndWithdraw(t *testing.T) {
	svc, snap := newTestService(t)

	require.NoError(t, svc.Deposit(domain.CurrencyILS, 5000, "initial"))
	require.NoError(t, svc.Deposit(domain.CurrencyUSD, 1000, ""))
	require.NoError(t, svc.Withdraw(domain.CurrencyILS, 1500, ""))

	accounts, err := svc.GetAccounts()
	require.NoError(t, err)

	balances := make(map[domain.Currency]float64)
	for _, acc := range accounts {
		balances[acc.Currency] = acc.Balance
	}
	assert.InDelta(t, 3500.0, balances[domain.CurrencyILS], 1e-9)
	assert.InDelta(t, 1000.0, balances[domain.CurrencyUSD], 1e-9)

	t.Run("flows trigger snapshots in ILS", func(t *testing.T) {
		require.Len(t, snap.triggers, 3)
		assert.Equal(t, domain.SnapshotDeposit, snap.triggers[0])
		assert.Equal(t, domain.SnapshotWithdrawal, snap.triggers[2])
		assert.InDelta(t, 5000.0, snap.flows[0], 1e-9)
		assert.InDelta(t, 3700.0, snap.flows[1], 1e-9)
		assert.InDelta(t, -1500.0, snap.flows[2], 1e-9)
	})

	t.Run("overdraft is rejected", func(t *testing.T) {
		err := svc.Withdraw(domain.CurrencyEUR, 100, "")
		assert.Error(t, err)
	})

	t.Run("total balance in reporting currency", func(t *testing.T) {
		total, err := svc.TotalBalanceILS()
		require.NoError(t, err)
		assert.InDelta(t, 3500.0+1000.0*3.7, total, 1e-9)
	})
}

func TestExchange(t *testing.T) {
	svc, snap := newTestService(t)

	require.NoError(t, svc.Deposit(domain.CurrencyILS, 3700, ""))
	snapshotsBefore := len(snap.triggers)

	require.NoError(t, svc.Exchange(domain.CurrencyILS, domain.CurrencyUSD, 3700, 1000, ""))

	accounts, err := svc.GetAccounts()
	require.NoError(t, err)
	balances := make(map[domain.Currency]float64)
	for _, acc := range accounts {
		balances[acc.Currency] = acc.Balance
	}
	assert.InDelta(t, 0.0, balances[domain.CurrencyILS], 1e-9)
	assert.InDelta(t, 1000.0, balances[domain.CurrencyUSD], 1e-9)

	assert.Len(t, snap.triggers, snapshotsBefore, "exchange must not trigger a snapshot")

	t.Run("insufficient source balance", func(t *testing.T) {
		err := svc.Exchange(domain.CurrencyILS, domain.CurrencyUSD, 100, 27, "")
		assert.Error(t, err)
	})
}

func TestRecordDividend(t *testing.T) {
	svc, snap := newTestService(t)

	require.NoError(t, svc.RecordDividend(domain.CurrencyUSD, 42.5, "h1", "Q2 payout"))
	assert.Empty(t, snap.triggers, "dividends are not external flows")

	accounts, err := svc.GetAccounts()
	require.NoError(t, err)
	for _, acc := range accounts {
		if acc.Currency != domain.CurrencyUSD {
			continue
		}
		assert.InDelta(t, 42.5, acc.Balance, 1e-9)
		require.Len(t, acc.Transactions, 1)
		assert.Equal(t, domain.CashDividend, acc.Transactions[0].Type)
		assert.Equal(t, "h1", acc.Transactions[0].RelatedHoldingID)
	}
}
