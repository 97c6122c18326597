package repositories

import (
	"database/sql"
	"fmt"

	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/shared"
)

// DeveloperRepository implements [models.Repository] for cached [models.Developer] rows.
type DeveloperRepository struct {
	db *sql.DB
}

// NewDeveloperRepository creates a new [DeveloperRepository] with the given database connection
func NewDeveloperRepository(db *sql.DB) *DeveloperRepository {
	return &DeveloperRepository{db: db}
}

// Upsert inserts or replaces a cached developer, appending it to the stored
// order when the id is new. A developer without an id is assigned a generated one.
func (r *DeveloperRepository) Upsert(dev *models.Developer) error {
	if dev.ID == "" {
		dev.ID = shared.GenerateID()
	}

	query := `
		INSERT INTO developers (id, position, name, founded, country)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM developers), ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, founded = excluded.founded, country = excluded.country
	`

	if _, err := r.db.Exec(query, dev.ID, dev.Name, dev.Founded, dev.Country); err != nil {
		return fmt.Errorf("failed to upsert developer: %w", err)
	}

	return nil
}

// Get retrieves a cached developer by ID.
func (r *DeveloperRepository) Get(id string) (models.Developer, error) {
	query := "SELECT id, name, founded, country FROM developers WHERE id = ?"

	var dev models.Developer
	err := r.db.QueryRow(query, id).Scan(&dev.ID, &dev.Name, &dev.Founded, &dev.Country)
	if err == sql.ErrNoRows {
		return models.Developer{}, fmt.Errorf("%w: %s", shared.ErrDeveloperNotFound, id)
	}
	if err != nil {
		return models.Developer{}, fmt.Errorf("failed to query developer: %w", err)
	}

	return dev, nil
}

// Delete removes a cached developer by ID.
func (r *DeveloperRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM developers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete developer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrDeveloperNotFound, id)
	}

	return nil
}

// List retrieves all cached developers in their stored order.
func (r *DeveloperRepository) List() ([]models.Developer, error) {
	rows, err := r.db.Query("SELECT id, name, founded, country FROM developers ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query developers: %w", err)
	}
	defer rows.Close()

	var developers []models.Developer
	for rows.Next() {
		var dev models.Developer
		if err := rows.Scan(&dev.ID, &dev.Name, &dev.Founded, &dev.Country); err != nil {
			return nil, fmt.Errorf("failed to scan developer: %w", err)
		}
		developers = append(developers, dev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return developers, nil
}

// ReplaceAll swaps the cached collection wholesale, preserving fetch order.
func (r *DeveloperRepository) ReplaceAll(developers []models.Developer) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM developers"); err != nil {
		return fmt.Errorf("failed to clear developers: %w", err)
	}

	query := "INSERT INTO developers (id, position, name, founded, country) VALUES (?, ?, ?, ?, ?)"
	for i, dev := range developers {
		if _, err := tx.Exec(query, dev.ID, i+1, dev.Name, dev.Founded, dev.Country); err != nil {
			return fmt.Errorf("failed to insert developer %s: %w", dev.ID, err)
		}
	}

	return tx.Commit()
}
