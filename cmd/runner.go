package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/torrentio/cli/internal/catalog"
	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/repositories"
	"github.com/torrentio/cli/internal/services"
	"github.com/torrentio/cli/internal/session"
	"github.com/torrentio/cli/internal/shared"
	"github.com/torrentio/cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	configPath   string
	api          services.Service
	httpClient   *http.Client
	logger       *log.Logger
	output       io.Writer
	engine       *tasks.CatalogEngine
	sessionStore session.Store
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        services.Service
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer

	// SessionStore overrides the default SQLite-backed session store.
	SessionStore session.Store
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	engine := tasks.NewCatalogEngine(opts.API,
		catalog.NewStore[models.Game](),
		catalog.NewStore[models.Developer]())

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		api:          opts.API,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
		output:       opts.Output,
		engine:       engine,
		sessionStore: opts.SessionStore,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, gamesCommand, developersCommand, refreshCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// pageSize resolves the configured page size, falling back to the default.
func (r *Runner) pageSize() int {
	if r.config != nil && r.config.Catalog.PageSize > 0 {
		return r.config.Catalog.PageSize
	}
	return catalog.DefaultPageSize
}

// openDatabase opens the configured SQLite database.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database (run 'torrentio setup database' first): %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// openSession creates a session manager over the shared token store.
//
// The returned cleanup closes the manager and any database it opened.
func (r *Runner) openSession() (*session.Manager, func(), error) {
	if r.sessionStore != nil {
		mgr, err := session.NewManager(r.sessionStore, r.api, r.logger)
		if err != nil {
			return nil, nil, err
		}
		return mgr, mgr.Close, nil
	}

	db, err := r.openDatabase()
	if err != nil {
		return nil, nil, err
	}

	mgr, err := session.NewManager(session.NewDBStore(db), r.api, r.logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return mgr, func() {
		mgr.Close()
		db.Close()
	}, nil
}

// attachCache wires the engine to the local SQLite catalog cache.
func (r *Runner) attachCache() (func(), error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}

	r.engine.SetCache(tasks.RepositoryCache{
		Games:      repositories.NewGameRepository(db),
		Developers: repositories.NewDeveloperRepository(db),
	})

	return func() {
		r.engine.SetCache(nil)
		db.Close()
	}, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
