package holdings

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles holding and transaction database operations.
// Transactions form an append-only audit log: they are inserted, never
// updated or deleted individually.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new holdings repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "holdings").Logger(),
	}
}

// GetAll returns all holdings with their transaction logs attached,
// transactions ordered by date.
func (r *Repository) GetAll() ([]domain.Holding, error) {
	rows, err := r.db.Query(`SELECT id, symbol, name, shares, currency, COALESCE(group_id, ''),
		current_price, last_updated FROM holdings ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var result []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	for i := range result {
		txs, err := r.GetTransactions(result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Transactions = txs
	}

	return result, nil
}

// GetByID returns a single holding with its transaction log.
func (r *Repository) GetByID(id string) (*domain.Holding, error) {
	row := r.db.QueryRow(`SELECT id, symbol, name, shares, currency, COALESCE(group_id, ''),
		current_price, last_updated FROM holdings WHERE id = ?`, id)

	h, err := scanHolding(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("holding %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan holding: %w", err)
	}

	txs, err := r.GetTransactions(h.ID)
	if err != nil {
		return nil, err
	}
	h.Transactions = txs

	return &h, nil
}

// Create inserts a new holding. A missing ID is generated.
func (r *Repository) Create(h *domain.Holding) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.LastUpdated.IsZero() {
		h.LastUpdated = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO holdings (id, symbol, name, shares, currency, group_id, current_price, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Symbol, h.Name, h.Shares, string(h.Currency), nullable(h.GroupID), h.CurrentPrice, h.LastUpdated.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	return nil
}

// Update rewrites the mutable fields of a holding (shares, price, group,
// name). The transaction log is untouched.
func (r *Repository) Update(h *domain.Holding) error {
	h.LastUpdated = time.Now()

	result, err := r.db.Exec(`UPDATE holdings SET symbol = ?, name = ?, shares = ?, currency = ?,
		group_id = ?, current_price = ?, last_updated = ? WHERE id = ?`,
		h.Symbol, h.Name, h.Shares, string(h.Currency), nullable(h.GroupID), h.CurrentPrice, h.LastUpdated.Unix(), h.ID)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holding %s not found", h.ID)
	}

	return nil
}

// Delete removes a holding; its transactions cascade.
func (r *Repository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM holdings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

// ClearGroup nulls out group_id on all holdings referencing the given group.
// Called when a group is deleted to keep referential integrity.
func (r *Repository) ClearGroup(groupID string) error {
	if _, err := r.db.Exec(`UPDATE holdings SET group_id = NULL WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to clear group %s from holdings: %w", groupID, err)
	}
	return nil
}

// AddTransaction appends a transaction to a holding's audit log.
func (r *Repository) AddTransaction(tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	_, err := r.db.Exec(`INSERT INTO transactions (id, holding_id, type, date, shares, price_per_share, fees, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.HoldingID, string(tx.Type), tx.Date.Unix(), tx.Shares, tx.PricePerShare, tx.Fees, tx.Note)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransactions returns a holding's transactions ordered by date.
func (r *Repository) GetTransactions(holdingID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(`SELECT id, holding_id, type, date, shares, price_per_share, fees, note
		FROM transactions WHERE holding_id = ? ORDER BY date, id`, holdingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var txType string
		var dateUnix int64
		if err := rows.Scan(&tx.ID, &tx.HoldingID, &txType, &dateUnix, &tx.Shares, &tx.PricePerShare, &tx.Fees, &tx.Note); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Type = domain.TransactionType(txType)
		tx.Date = time.Unix(dateUnix, 0).UTC()
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// scanner abstracts sql.Row and sql.Rows for scanHolding.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHolding(s scanner) (domain.Holding, error) {
	var h domain.Holding
	var cur string
	var updatedUnix int64
	if err := s.Scan(&h.ID, &h.Symbol, &h.Name, &h.Shares, &cur, &h.GroupID, &h.CurrentPrice, &updatedUnix); err != nil {
		return domain.Holding{}, err
	}
	h.Currency = domain.Currency(cur)
	h.LastUpdated = time.Unix(updatedUnix, 0).UTC()
	return h, nil
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
