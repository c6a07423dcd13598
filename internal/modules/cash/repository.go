// Package cash manages per-currency cash balances and the movement log
// behind them. Movements form an immutable audit trail; balances are
// derived state kept alongside for cheap reads.
package cash

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/database"
	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles cash account and transaction database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new cash repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "cash").Logger(),
	}
}

// GetAccounts returns all cash accounts with their transactions,
// covering every supported currency even when no row exists yet.
func (r *Repository) GetAccounts() ([]domain.CashAccount, error) {
	balances := make(map[domain.Currency]float64)

	rows, err := r.db.Query(`SELECT currency, balance FROM cash_accounts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cur string
		var balance float64
		if err := rows.Scan(&cur, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan cash account: %w", err)
		}
		balances[domain.Currency(cur)] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash accounts: %w", err)
	}

	var result []domain.CashAccount
	for _, cur := range domain.Currencies {
		txs, err := r.GetTransactions(cur)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.CashAccount{
			Currency:     cur,
			Balance:      balances[cur],
			Transactions: txs,
		})
	}

	return result, nil
}

// GetBalance returns the balance for one currency, zero when the account
// has never been touched.
func (r *Repository) GetBalance(cur domain.Currency) (float64, error) {
	var balance float64
	err := r.db.QueryRow(`SELECT balance FROM cash_accounts WHERE currency = ?`, string(cur)).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for %s: %w", cur, err)
	}
	return balance, nil
}

// GetTransactions returns all movements for one currency, newest first.
func (r *Repository) GetTransactions(cur domain.Currency) ([]domain.CashTransaction, error) {
	rows, err := r.db.Query(`SELECT id, currency, type, amount, date, note, COALESCE(related_holding_id, '')
		FROM cash_transactions WHERE currency = ? ORDER BY date DESC, id`, string(cur))
	if err != nil {
		return nil, fmt.Errorf("failed to query cash transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.CashTransaction
	for rows.Next() {
		var tx domain.CashTransaction
		var curStr, txType string
		var dateUnix int64
		if err := rows.Scan(&tx.ID, &curStr, &txType, &tx.Amount, &dateUnix, &tx.Note, &tx.RelatedHoldingID); err != nil {
			return nil, fmt.Errorf("failed to scan cash transaction: %w", err)
		}
		tx.Currency = domain.Currency(curStr)
		tx.Type = domain.CashTransactionType(txType)
		tx.Date = time.Unix(dateUnix, 0).UTC()
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash transactions: %w", err)
	}

	return txs, nil
}

// Apply records a movement and adjusts the account balance in one
// database transaction. The movement amount is signed.
func (r *Repository) Apply(tx *domain.CashTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}

	return database.WithTransaction(r.db, func(dbTx *sql.Tx) error {
		_, err := dbTx.Exec(`INSERT INTO cash_accounts (currency, balance) VALUES (?, 0)
			ON CONFLICT(currency) DO NOTHING`, string(tx.Currency))
		if err != nil {
			return fmt.Errorf("failed to ensure cash account: %w", err)
		}

		_, err = dbTx.Exec(`INSERT INTO cash_transactions (id, currency, type, amount, date, note, related_holding_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, string(tx.Currency), string(tx.Type), tx.Amount, tx.Date.Unix(), tx.Note, nullable(tx.RelatedHoldingID))
		if err != nil {
			return fmt.Errorf("failed to insert cash transaction: %w", err)
		}

		_, err = dbTx.Exec(`UPDATE cash_accounts SET balance = balance + ? WHERE currency = ?`,
			tx.Amount, string(tx.Currency))
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		return nil
	})
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
