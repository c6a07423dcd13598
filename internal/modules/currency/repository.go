package currency

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles exchange-rate persistence in portfolio.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new exchange-rate repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "rates").Logger(),
	}
}

// GetAll returns the stored rate table. Currencies never fetched are absent
// from the map; the reporting currency is implicit (rate 1).
func (r *Repository) GetAll() (domain.ExchangeRates, error) {
	rows, err := r.db.Query(`SELECT currency, rate, last_updated FROM exchange_rates`)
	if err != nil {
		return domain.ExchangeRates{}, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates := domain.ExchangeRates{Rates: make(map[domain.Currency]float64)}
	for rows.Next() {
		var cur string
		var rate float64
		var updated int64
		if err := rows.Scan(&cur, &rate, &updated); err != nil {
			return domain.ExchangeRates{}, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates.Rates[domain.Currency(cur)] = rate
		if t := time.Unix(updated, 0).UTC(); t.After(rates.LastUpdated) {
			rates.LastUpdated = t
		}
	}
	if err := rows.Err(); err != nil {
		return domain.ExchangeRates{}, fmt.Errorf("error iterating exchange rates: %w", err)
	}

	return rates, nil
}

// Upsert stores the conversion factor for a single currency.
func (r *Repository) Upsert(cur domain.Currency, rate float64, at time.Time) error {
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO exchange_rates (currency, rate, last_updated) VALUES (?, ?, ?)`,
		string(cur), rate, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate for %s: %w", cur, err)
	}
	return nil
}
