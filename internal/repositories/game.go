package repositories

import (
	"database/sql"
	"fmt"

	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/shared"
)

// GameRepository implements [models.Repository] for cached [models.Game] rows.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new [GameRepository] with the given database connection
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts or replaces a cached game, appending it to the stored order
// when the id is new. A game without an id is assigned a generated one.
func (r *GameRepository) Upsert(game *models.Game) error {
	if game.ID == "" {
		game.ID = shared.GenerateID()
	}

	query := `
		INSERT INTO games (id, position, title, genre, description, gpu, ram, cpu, image, video, download)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM games), ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, genre = excluded.genre, description = excluded.description,
			gpu = excluded.gpu, ram = excluded.ram, cpu = excluded.cpu,
			image = excluded.image, video = excluded.video, download = excluded.download
	`

	_, err := r.db.Exec(query, game.ID, game.Title, game.Genre, game.Description,
		game.Requirements.GPU, game.Requirements.RAM, game.Requirements.CPU,
		game.Image, game.Video, game.Download)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// Get retrieves a cached game by ID.
func (r *GameRepository) Get(id string) (models.Game, error) {
	query := `
		SELECT id, title, genre, description, gpu, ram, cpu, image, video, download
		FROM games
		WHERE id = ?
	`

	var game models.Game
	err := r.db.QueryRow(query, id).Scan(&game.ID, &game.Title, &game.Genre, &game.Description,
		&game.Requirements.GPU, &game.Requirements.RAM, &game.Requirements.CPU,
		&game.Image, &game.Video, &game.Download)
	if err == sql.ErrNoRows {
		return models.Game{}, fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to query game: %w", err)
	}

	return game, nil
}

// Delete removes a cached game by ID.
func (r *GameRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}

	return nil
}

// List retrieves all cached games in their stored order.
func (r *GameRepository) List() ([]models.Game, error) {
	query := `
		SELECT id, title, genre, description, gpu, ram, cpu, image, video, download
		FROM games
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(&game.ID, &game.Title, &game.Genre, &game.Description,
			&game.Requirements.GPU, &game.Requirements.RAM, &game.Requirements.CPU,
			&game.Image, &game.Video, &game.Download)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return games, nil
}

// ReplaceAll swaps the cached collection wholesale, preserving fetch order.
func (r *GameRepository) ReplaceAll(games []models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}

	query := `
		INSERT INTO games (id, position, title, genre, description, gpu, ram, cpu, image, video, download)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, game := range games {
		_, err := tx.Exec(query, game.ID, i+1, game.Title, game.Genre, game.Description,
			game.Requirements.GPU, game.Requirements.RAM, game.Requirements.CPU,
			game.Image, game.Video, game.Download)
		if err != nil {
			return fmt.Errorf("failed to insert game %s: %w", game.ID, err)
		}
	}

	return tx.Commit()
}
