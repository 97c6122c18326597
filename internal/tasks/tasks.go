// package tasks implements catalog refresh operations against the remote API.
//
// The core abstraction is CatalogEngine, which fetches the remote collections,
// applies them to the in-memory stores under the stale-load rule, and mirrors
// them into the local cache. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/torrentio/cli/internal/catalog"
	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/services"
	"github.com/torrentio/cli/internal/shared"
)

// Cache is the optional persistence layer mirroring fetched collections.
// Implemented by [RepositoryCache] over the SQLite repositories.
type Cache interface {
	ReplaceGames(games []models.Game) error
	ListGames() ([]models.Game, error)
	ReplaceDevelopers(developers []models.Developer) error
	ListDevelopers() ([]models.Developer, error)
}

// RepositoryCache adapts entity repositories to the [Cache] interface.
type RepositoryCache struct {
	Games      models.Repository[models.Game]
	Developers models.Repository[models.Developer]
}

func (c RepositoryCache) ReplaceGames(games []models.Game) error { return c.Games.ReplaceAll(games) }
func (c RepositoryCache) ListGames() ([]models.Game, error)     { return c.Games.List() }
func (c RepositoryCache) ReplaceDevelopers(developers []models.Developer) error {
	return c.Developers.ReplaceAll(developers)
}
func (c RepositoryCache) ListDevelopers() ([]models.Developer, error) { return c.Developers.List() }

// RefreshResult contains all data from a full catalog refresh.
type RefreshResult struct {
	Games         int  // Number of games loaded
	Developers    int  // Number of developers loaded
	GamesApplied  bool // False when a newer load superseded this one
	DevsApplied   bool // False when a newer load superseded this one
	CacheErr      error
	RestoredGames int // Populated by RestoreFromCache
	RestoredDevs  int // Populated by RestoreFromCache
}

// CatalogEngine orchestrates catalog loads: remote fetch, store application,
// and cache mirroring.
type CatalogEngine struct {
	api        services.Service
	games      *catalog.Store[models.Game]
	developers *catalog.Store[models.Developer]
	cache      Cache
}

// NewCatalogEngine creates an engine over the provided service and stores.
func NewCatalogEngine(api services.Service, games *catalog.Store[models.Game], developers *catalog.Store[models.Developer]) *CatalogEngine {
	return &CatalogEngine{
		api:        api,
		games:      games,
		developers: developers,
	}
}

// SetCache attaches an optional persistence layer mirroring refreshed data.
func (e *CatalogEngine) SetCache(c Cache) { e.cache = c }

// Games returns the engine's game store.
func (e *CatalogEngine) Games() *catalog.Store[models.Game] { return e.games }

// Developers returns the engine's developer store.
func (e *CatalogEngine) Developers() *catalog.Store[models.Developer] { return e.developers }

// Refresh fetches both remote collections and applies them to the stores.
//
// Load tickets are issued before fetching, so a refresh superseded by a newer
// one cannot overwrite its data. Cache write failures do not fail the refresh;
// they are reported through [RefreshResult.CacheErr].
func (e *CatalogEngine) Refresh(ctx context.Context, prog chan<- ProgressUpdate) (*RefreshResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	gameTicket := e.games.BeginLoad()
	devTicket := e.developers.BeginLoad()

	e.sendProgress(prog, fetchGamesUpdate(1, 2))
	games, err := e.api.Games(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	e.sendProgress(prog, fetchDevelopersUpdate(2, 2))
	developers, err := e.api.Developers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch developers: %w", err)
	}

	result := &RefreshResult{
		Games:        len(games),
		Developers:   len(developers),
		GamesApplied: e.games.CompleteLoad(gameTicket, games),
		DevsApplied:  e.developers.CompleteLoad(devTicket, developers),
	}

	if e.cache != nil && result.GamesApplied && result.DevsApplied {
		e.sendProgress(prog, cacheWriteUpdate(len(games)+len(developers)))
		if err := e.cache.ReplaceGames(games); err != nil {
			result.CacheErr = err
		} else if err := e.cache.ReplaceDevelopers(developers); err != nil {
			result.CacheErr = err
		}
	}

	e.sendProgress(prog, refreshDoneUpdate(result.Games, result.Developers))
	return result, nil
}

// Search fetches games matching an opaque free-text query and applies them to
// the game store under the same stale-load rule as Refresh.
func (e *CatalogEngine) Search(ctx context.Context, prog chan<- ProgressUpdate, query string) ([]models.Game, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	ticket := e.games.BeginLoad()

	e.sendProgress(prog, searchGamesUpdate(query))
	games, err := e.api.SearchGames(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	e.games.CompleteLoad(ticket, games)
	return games, nil
}

// RestoreFromCache loads the stores from the local cache without touching the
// network. Used for offline browsing and TUI startup before the first refresh.
func (e *CatalogEngine) RestoreFromCache(prog chan<- ProgressUpdate) (*RefreshResult, error) {
	if e.cache == nil {
		return nil, fmt.Errorf("%w: no cache configured", shared.ErrServiceUnavailable)
	}

	e.sendProgress(prog, restoreUpdate())

	games, err := e.cache.ListGames()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached games: %w", err)
	}

	developers, err := e.cache.ListDevelopers()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached developers: %w", err)
	}

	e.games.Load(games)
	e.developers.Load(developers)

	return &RefreshResult{
		RestoredGames: len(games),
		RestoredDevs:  len(developers),
	}, nil
}

// sendProgress sends an update without blocking when the consumer is slow or absent.
func (e *CatalogEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
