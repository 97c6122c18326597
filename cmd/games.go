package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/torrentio/cli/internal/catalog"
	"github.com/torrentio/cli/internal/formatter"
	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadCatalog populates the engine's stores, from the local cache when cached
// is set and from the remote API otherwise.
func (r *Runner) loadCatalog(ctx context.Context, cached bool) error {
	if cached {
		cleanup, err := r.attachCache()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := r.engine.RestoreFromCache(nil)
		if err != nil {
			return err
		}
		r.logger.Info("catalog restored from cache", "games", result.RestoredGames, "developers", result.RestoredDevs)
		return nil
	}

	result, err := r.engine.Refresh(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	r.logger.Info("catalog fetched", "games", result.Games, "developers", result.Developers)
	return nil
}

// GamesList lists one page of the game catalog, optionally filtered by genre.
func (r *Runner) GamesList(ctx context.Context, cmd *cli.Command) error {
	genre := cmd.String("genre")
	requestedPage := cmd.Int("page")
	pageSize := cmd.Int("page-size")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if pageSize <= 0 {
		pageSize = r.pageSize()
	}

	if err := r.loadCatalog(ctx, cmd.Bool("cached")); err != nil {
		return err
	}

	criterion := catalog.None()
	if genre != "" {
		criterion = catalog.ByGenre(genre)
	}

	games := catalog.Apply(r.engine.Games().All(), criterion)
	page := catalog.Paginate(games, pageSize, requestedPage)

	if useJSON {
		return r.writeJSON(page, pretty)
	}

	heading := "Games"
	if genre != "" {
		heading = fmt.Sprintf("Games - %s", genre)
	}
	r.writePlainHeader(heading)

	return r.printGamePage(page)
}

// printGamePage renders one page of games plus the pagination footer.
func (r *Runner) printGamePage(page catalog.Page[models.Game]) error {
	if len(page.Items) == 0 {
		return r.writePlain("No games found.\n")
	}

	offset := (page.CurrentPage - 1) * page.PageSize
	for i, game := range page.Items {
		line := fmt.Sprintf("%3d. %s", offset+i+1, game.Title)
		if game.Genre != "" {
			line = fmt.Sprintf("%s (%s)", line, game.Genre)
		}
		r.writePlain("%s\n", line)
	}

	r.writePlain("\n%s\n", renderPageFooter(page))
	return r.writePlain("Page %d of %d (%d games)\n", page.CurrentPage, page.TotalPages, page.TotalItems)
}

// renderPageFooter formats the visible page-number window, with an ellipsis
// shortcut to the final page when more pages exist.
func renderPageFooter(page catalog.Page[models.Game]) string {
	w := page.Window
	if len(w.Pages) == 0 {
		return ""
	}

	parts := []string{}
	if page.CurrentPage > 1 {
		parts = append(parts, "«")
	}
	for _, p := range w.Pages {
		if p == page.CurrentPage {
			parts = append(parts, fmt.Sprintf("[%d]", p))
		} else {
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	if w.Ellipsis {
		parts = append(parts, "…", fmt.Sprintf("%d", w.LastPage))
	}
	if page.CurrentPage < page.TotalPages {
		parts = append(parts, "»")
	}

	return strings.Join(parts, " ")
}

// GamesShow prints the full detail for one game by ID.
func (r *Runner) GamesShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.loadCatalog(ctx, cmd.Bool("cached")); err != nil {
		return err
	}

	game, ok := r.engine.Games().FindByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}

	if useJSON {
		return r.writeJSON(game, pretty)
	}

	r.writePlainHeader(game.Title)
	if game.Genre != "" {
		r.writePlain("Genre: %s\n", game.Genre)
	}
	if game.Description != "" {
		r.writePlain("\n%s\n", game.Description)
	}

	req := game.Requirements
	if req.GPU != "" || req.RAM != "" || req.CPU != "" {
		r.writePlainln("Requirements:")
		if req.GPU != "" {
			r.writePlain("  GPU: %s\n", req.GPU)
		}
		if req.RAM != "" {
			r.writePlain("  RAM: %s\n", req.RAM)
		}
		if req.CPU != "" {
			r.writePlain("  CPU: %s\n", req.CPU)
		}
	}

	if game.Download != "" {
		r.writePlain("\nDownload: %s\n", game.Download)
	}

	return nil
}

// GamesSearch runs a server-side free-text search and pages the results.
func (r *Runner) GamesSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	requestedPage := cmd.Int("page")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: search query required", shared.ErrMissingArgument)
	}

	games, err := r.engine.Search(ctx, nil, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	page := catalog.Paginate(games, r.pageSize(), requestedPage)

	if useJSON {
		return r.writeJSON(page, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Games matching %q", query))
	return r.printGamePage(page)
}

// GamesGenres lists the distinct genres present in the catalog.
func (r *Runner) GamesGenres(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	if err := r.loadCatalog(ctx, cmd.Bool("cached")); err != nil {
		return err
	}

	genres := catalog.Genres(r.engine.Games().All())

	if useJSON {
		return r.writeJSON(genres, true)
	}

	if len(genres) == 0 {
		return r.writePlain("No genres found.\n")
	}

	r.writePlainHeader("Genres")
	for _, genre := range genres {
		r.writePlain("• %s\n", genre)
	}
	return nil
}

// GamesExport writes the (optionally filtered) catalog to disk in the chosen format.
func (r *Runner) GamesExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	output := cmd.String("output")
	genre := cmd.String("genre")
	includeDevelopers := cmd.Bool("developers")

	if err := r.loadCatalog(ctx, cmd.Bool("cached")); err != nil {
		return err
	}

	criterion := catalog.None()
	label := "catalog"
	if genre != "" {
		criterion = catalog.ByGenre(genre)
		label = shared.NormalizeGenre(genre)
	}

	export := &models.CatalogExport{
		Label: label,
		Genre: genre,
		Games: catalog.Apply(r.engine.Games().All(), criterion),
	}
	if includeDevelopers {
		export.Developers = r.engine.Developers().All()
	}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d games to %s\n", len(export.Games), result.GamesFile)
		if result.DevelopersFile != "" {
			r.writePlain("✓ Exported %d developers to %s\n", len(export.Developers), result.DevelopersFile)
		}
		r.writePlain("✓ Metadata written to %s\n", result.MetadataFile)
		return nil

	case "markdown", "md":
		imageURL := ""
		if len(export.Games) > 0 {
			imageURL = export.Games[0].Image
		}
		result, err := formatter.WriteMarkdownExport(export, output, imageURL)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d games to %s\n", len(export.Games), result.Directory)
		return nil

	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d games to %s\n", len(export.Games), path)
		return nil

	case "json":
		path, err := formatter.WriteJSONExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d games to %s\n", len(export.Games), path)
		return nil

	default:
		return fmt.Errorf("%w: unknown format %q (want csv, markdown, text or json)", shared.ErrInvalidFlag, format)
	}
}

// Refresh fetches the remote catalog and mirrors it into the local cache.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
	cleanup, err := r.attachCache()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := r.engine.Refresh(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if result.CacheErr != nil {
		r.logger.Warn("failed to cache catalog", "error", result.CacheErr)
	}

	r.writePlain("✓ Fetched %d games and %d developers\n", result.Games, result.Developers)
	if result.CacheErr == nil {
		r.writePlain("✓ Catalog cached to %s\n", r.config.Database.Path)
	}
	return nil
}
