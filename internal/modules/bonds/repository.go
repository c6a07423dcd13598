// Package bonds manages bond positions held alongside stock holdings.
// Bonds are ILS-denominated and tracked with an aggregate cost basis
// rather than a per-lot transaction log.
package bonds

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles bond database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new bonds repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "bonds").Logger(),
	}
}

// GetAll returns all bonds ordered by name.
func (r *Repository) GetAll() ([]domain.Bond, error) {
	rows, err := r.db.Query(`SELECT id, name, units, cost_basis, current_price, last_updated,
		COALESCE(maturity_date, 0), coupon_rate FROM bonds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bonds: %w", err)
	}
	defer rows.Close()

	var result []domain.Bond
	for rows.Next() {
		var b domain.Bond
		var updatedUnix, maturityUnix int64
		if err := rows.Scan(&b.ID, &b.Name, &b.Units, &b.CostBasis, &b.CurrentPrice, &updatedUnix, &maturityUnix, &b.CouponRate); err != nil {
			return nil, fmt.Errorf("failed to scan bond: %w", err)
		}
		b.LastUpdated = time.Unix(updatedUnix, 0).UTC()
		if maturityUnix > 0 {
			m := time.Unix(maturityUnix, 0).UTC()
			b.MaturityDate = &m
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bonds: %w", err)
	}

	return result, nil
}

// GetByID returns a single bond.
func (r *Repository) GetByID(id string) (*domain.Bond, error) {
	var b domain.Bond
	var updatedUnix, maturityUnix int64
	err := r.db.QueryRow(`SELECT id, name, units, cost_basis, current_price, last_updated,
		COALESCE(maturity_date, 0), coupon_rate FROM bonds WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Units, &b.CostBasis, &b.CurrentPrice, &updatedUnix, &maturityUnix, &b.CouponRate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bond %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan bond: %w", err)
	}
	b.LastUpdated = time.Unix(updatedUnix, 0).UTC()
	if maturityUnix > 0 {
		m := time.Unix(maturityUnix, 0).UTC()
		b.MaturityDate = &m
	}

	return &b, nil
}

// Create inserts a new bond. A missing ID is generated.
func (r *Repository) Create(b *domain.Bond) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.LastUpdated.IsZero() {
		b.LastUpdated = time.Now()
	}

	var maturity interface{}
	if b.MaturityDate != nil {
		maturity = b.MaturityDate.Unix()
	}

	_, err := r.db.Exec(`INSERT INTO bonds (id, name, units, cost_basis, current_price, last_updated, maturity_date, coupon_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Units, b.CostBasis, b.CurrentPrice, b.LastUpdated.Unix(), maturity, b.CouponRate)
	if err != nil {
		return fmt.Errorf("failed to insert bond: %w", err)
	}

	return nil
}

// Update rewrites a bond's fields.
func (r *Repository) Update(b *domain.Bond) error {
	b.LastUpdated = time.Now()

	var maturity interface{}
	if b.MaturityDate != nil {
		maturity = b.MaturityDate.Unix()
	}

	result, err := r.db.Exec(`UPDATE bonds SET name = ?, units = ?, cost_basis = ?, current_price = ?,
		last_updated = ?, maturity_date = ?, coupon_rate = ? WHERE id = ?`,
		b.Name, b.Units, b.CostBasis, b.CurrentPrice, b.LastUpdated.Unix(), maturity, b.CouponRate, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update bond: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bond %s not found", b.ID)
	}

	return nil
}

// Delete removes a bond.
func (r *Repository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM bonds WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete bond: %w", err)
	}
	return nil
}
