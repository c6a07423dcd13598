// Package snapshots records point-in-time portfolio values. Snapshots are
// the raw series behind return and risk calculations.
package snapshots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles snapshot database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshots repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// GetAll returns all snapshots ordered by date ascending.
func (r *Repository) GetAll() ([]domain.Snapshot, error) {
	return r.query(`SELECT id, date, trigger_reason, value_before_flow, cash_flow, stocks, bonds, cash
		FROM snapshots ORDER BY date, id`)
}

// GetRange returns snapshots within [from, to] ordered by date ascending.
func (r *Repository) GetRange(from, to time.Time) ([]domain.Snapshot, error) {
	return r.query(`SELECT id, date, trigger_reason, value_before_flow, cash_flow, stocks, bonds, cash
		FROM snapshots WHERE date >= ? AND date <= ? ORDER BY date, id`, from.Unix(), to.Unix())
}

// GetLatest returns the most recent snapshot, or nil when none exist.
func (r *Repository) GetLatest() (*domain.Snapshot, error) {
	rows, err := r.query(`SELECT id, date, trigger_reason, value_before_flow, cash_flow, stocks, bonds, cash
		FROM snapshots ORDER BY date DESC, id DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ExistsOnDay reports whether any snapshot falls on the given calendar day (UTC).
func (r *Repository) ExistsOnDay(day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshots WHERE date >= ? AND date < ?`,
		start.Unix(), end.Unix()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new snapshot. A missing ID is generated.
func (r *Repository) Create(s *domain.Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Date.IsZero() {
		s.Date = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO snapshots (id, date, trigger_reason, value_before_flow, cash_flow, stocks, bonds, cash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Date.Unix(), string(s.Trigger), s.ValueBeforeFlow, s.CashFlow, s.Stocks, s.Bonds, s.Cash)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// Delete removes a snapshot.
func (r *Repository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *Repository) query(q string, args ...interface{}) ([]domain.Snapshot, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var result []domain.Snapshot
	for rows.Next() {
		var s domain.Snapshot
		var trigger string
		var dateUnix int64
		if err := rows.Scan(&s.ID, &dateUnix, &trigger, &s.ValueBeforeFlow, &s.CashFlow, &s.Stocks, &s.Bonds, &s.Cash); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.Trigger = domain.SnapshotTrigger(trigger)
		s.Date = time.Unix(dateUnix, 0).UTC()
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return result, nil
}
