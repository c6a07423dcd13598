// Package allocation tracks target allocation groups and computes how far
// the portfolio has drifted from them.
package allocation

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// Repository handles group database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new allocation repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "allocation").Logger(),
	}
}

// GetAllGroups returns all groups ordered by name.
func (r *Repository) GetAllGroups() ([]domain.Group, error) {
	rows, err := r.db.Query(`SELECT id, name, target_pct, color FROM groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var result []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetPct, &g.Color); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return result, nil
}

// GetGroupByID returns a single group.
func (r *Repository) GetGroupByID(id string) (*domain.Group, error) {
	var g domain.Group
	err := r.db.QueryRow(`SELECT id, name, target_pct, color FROM groups WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.TargetPct, &g.Color)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	return &g, nil
}

// CreateGroup inserts a new group. A missing ID is generated.
func (r *Repository) CreateGroup(g *domain.Group) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}

	_, err := r.db.Exec(`INSERT INTO groups (id, name, target_pct, color) VALUES (?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetPct, g.Color)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	r.log.Debug().Str("name", g.Name).Float64("target_pct", g.TargetPct).Msg("Group created")
	return nil
}

// UpdateGroup rewrites a group's fields.
func (r *Repository) UpdateGroup(g *domain.Group) error {
	result, err := r.db.Exec(`UPDATE groups SET name = ?, target_pct = ?, color = ? WHERE id = ?`,
		g.Name, g.TargetPct, g.Color, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s not found", g.ID)
	}

	return nil
}

// DeleteGroup removes a group. Holdings referencing it fall back to
// ungrouped via the schema's ON DELETE SET NULL.
func (r *Repository) DeleteGroup(id string) error {
	result, err := r.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.log.Debug().Str("id", id).Int64("rows_affected", rowsAffected).Msg("Group deleted")
	return nil
}
