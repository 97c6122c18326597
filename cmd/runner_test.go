package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/services"
	"github.com/torrentio/cli/internal/session"
	"github.com/torrentio/cli/internal/shared"
	tu "github.com/torrentio/cli/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := &tu.MockService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be created")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("pageSize", func(t *testing.T) {
		t.Run("uses configured size", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Catalog.PageSize = 6
			runner := NewRunner(RunnerOpts{Config: config})

			if runner.pageSize() != 6 {
				t.Errorf("expected page size 6, got %d", runner.pageSize())
			}
		})

		t.Run("falls back to default", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Catalog.PageSize = 0
			runner := NewRunner(RunnerOpts{Config: config})

			if runner.pageSize() != 12 {
				t.Errorf("expected page size 12, got %d", runner.pageSize())
			}
		})
	})
}

// makeGames builds n games cycling between two genres.
func makeGames(n int) []models.Game {
	games := make([]models.Game, n)
	for i := range games {
		genre := "Action"
		if i%2 == 1 {
			genre = "Racing"
		}
		games[i] = models.Game{
			ID:    fmt.Sprintf("g%d", i+1),
			Title: fmt.Sprintf("Game %d", i+1),
			Genre: genre,
		}
	}
	return games
}

// runCommand executes a CLI invocation against a fresh app built from r.
func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "torrentio",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"torrentio"}, args...))
}

func newTestRunner(svc *tu.MockService, output *bytes.Buffer) *Runner {
	return NewRunner(RunnerOpts{
		Config:       shared.DefaultConfig(),
		API:          svc,
		Output:       output,
		SessionStore: session.NewMemoryStore(),
	})
}

func TestGameCommands(t *testing.T) {
	svc := func(games []models.Game) *tu.MockService {
		return &tu.MockService{
			GamesFn: func(ctx context.Context) ([]models.Game, error) { return games, nil },
		}
	}

	t.Run("games list pages the catalog", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(25)), output)

		if err := runCommand(t, runner, "games", "list", "--page", "3"); err != nil {
			t.Fatalf("games list failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Game 25") {
			t.Errorf("expected last page to show game 25, got: %s", result)
		}
		if strings.Contains(result, "Game 24") {
			t.Errorf("expected only page 3 items, got: %s", result)
		}
		if !strings.Contains(result, "1 2 [3]") {
			t.Errorf("expected page window footer, got: %s", result)
		}
		if !strings.Contains(result, "Page 3 of 3 (25 games)") {
			t.Errorf("expected page summary, got: %s", result)
		}
	})

	t.Run("games list clamps out-of-range pages", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(25)), output)

		if err := runCommand(t, runner, "games", "list", "--page", "99"); err != nil {
			t.Fatalf("games list failed: %v", err)
		}

		if !strings.Contains(output.String(), "Page 3 of 3") {
			t.Errorf("expected clamp to last page, got: %s", output.String())
		}
	})

	t.Run("games list filters by genre case-insensitively", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(6)), output)

		if err := runCommand(t, runner, "games", "list", "--genre", "RACING"); err != nil {
			t.Fatalf("games list failed: %v", err)
		}

		result := output.String()
		if strings.Contains(result, "(Action)") {
			t.Errorf("expected only racing games, got: %s", result)
		}
		if !strings.Contains(result, "(3 games)") {
			t.Errorf("expected three racing games, got: %s", result)
		}
	})

	t.Run("games list reports empty filter result", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(6)), output)

		if err := runCommand(t, runner, "games", "list", "--genre", "Strategy"); err != nil {
			t.Fatalf("games list failed: %v", err)
		}

		if !strings.Contains(output.String(), "No games found.") {
			t.Errorf("expected empty result notice, got: %s", output.String())
		}
	})

	t.Run("games list json output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(25)), output)

		if err := runCommand(t, runner, "games", "list", "--json"); err != nil {
			t.Fatalf("games list failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"TotalItems":25`) {
			t.Errorf("expected page metadata in JSON, got: %s", result)
		}
		if !strings.Contains(result, `"Game 1"`) {
			t.Errorf("expected game data in JSON, got: %s", result)
		}
	})

	t.Run("games show prints detail", func(t *testing.T) {
		games := []models.Game{{
			ID:          "g1",
			Title:       "Doom Eternal",
			Genre:       "FPS",
			Description: "Rip and tear",
			Requirements: models.Requirements{
				GPU: "GTX 1060", RAM: "8GB", CPU: "i5",
			},
			Download: "https://cdn.example.com/doom.torrent",
		}}
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(games), output)

		if err := runCommand(t, runner, "games", "show", "--id", "g1"); err != nil {
			t.Fatalf("games show failed: %v", err)
		}

		result := output.String()
		for _, want := range []string{"Doom Eternal", "Genre: FPS", "Rip and tear", "GPU: GTX 1060", "Download:"} {
			if !strings.Contains(result, want) {
				t.Errorf("expected %q in detail output, got: %s", want, result)
			}
		}
	})

	t.Run("games show unknown id", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(3)), output)

		err := runCommand(t, runner, "games", "show", "--id", "missing")
		if err == nil {
			t.Fatal("expected error for unknown id")
		}
		if !strings.Contains(err.Error(), "missing") {
			t.Errorf("expected id in error, got %v", err)
		}
	})

	t.Run("games search passes the query through", func(t *testing.T) {
		var gotQuery string
		mock := &tu.MockService{
			SearchFn: func(ctx context.Context, query string) ([]models.Game, error) {
				gotQuery = query
				return makeGames(2), nil
			},
		}
		output := &bytes.Buffer{}
		runner := newTestRunner(mock, output)

		if err := runCommand(t, runner, "games", "search", "doom 2"); err != nil {
			t.Fatalf("games search failed: %v", err)
		}

		if gotQuery != "doom 2" {
			t.Errorf("expected query passed verbatim, got %q", gotQuery)
		}
		if !strings.Contains(output.String(), "Game 1") {
			t.Errorf("expected results printed, got: %s", output.String())
		}
	})

	t.Run("games search without query", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(&tu.MockService{}, output)

		if err := runCommand(t, runner, "games", "search"); err == nil {
			t.Fatal("expected error for missing query")
		}
	})

	t.Run("games genres lists distinct labels", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(6)), output)

		if err := runCommand(t, runner, "games", "genres"); err != nil {
			t.Fatalf("games genres failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "action") || !strings.Contains(result, "racing") {
			t.Errorf("expected normalized genres, got: %s", result)
		}
		if strings.Count(result, "action") != 1 {
			t.Errorf("expected distinct genres, got: %s", result)
		}
	})

	t.Run("games export writes CSV files", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(4)), output)

		base := filepath.Join(t.TempDir(), "export")
		if err := runCommand(t, runner, "games", "export", "--format", "csv", "--output", base); err != nil {
			t.Fatalf("games export failed: %v", err)
		}

		tu.AssertFileExists(t, base+"_games.csv")
		tu.AssertFileExists(t, base+"_metadata.json")
		if !strings.Contains(output.String(), "✓ Exported 4 games") {
			t.Errorf("expected export confirmation, got: %s", output.String())
		}
	})

	t.Run("games export rejects unknown format", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc(makeGames(1)), output)

		if err := runCommand(t, runner, "games", "export", "--format", "yaml"); err == nil {
			t.Fatal("expected error for unknown format")
		}
	})
}

func TestDeveloperCommands(t *testing.T) {
	svc := &tu.MockService{
		DevelopersFn: func(ctx context.Context) ([]models.Developer, error) {
			return []models.Developer{
				{ID: "d1", Name: "FromSoftware", Founded: 1986, Country: "Japan"},
				{ID: "d2", Name: "Supergiant Games", Founded: 2009, Country: "USA"},
			}, nil
		},
	}

	t.Run("developers list plain output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc, output)

		if err := runCommand(t, runner, "developers", "list"); err != nil {
			t.Fatalf("developers list failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "FromSoftware - founded 1986, Japan") {
			t.Errorf("expected developer line, got: %s", result)
		}
	})

	t.Run("developers list json output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(svc, output)

		if err := runCommand(t, runner, "developers", "list", "--json"); err != nil {
			t.Fatalf("developers list failed: %v", err)
		}

		if !strings.Contains(output.String(), `"Supergiant Games"`) {
			t.Errorf("expected JSON output, got: %s", output.String())
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("register rejects invalid input locally", func(t *testing.T) {
		mock := &tu.MockService{}
		output := &bytes.Buffer{}
		runner := newTestRunner(mock, output)

		err := runCommand(t, runner, "auth", "register",
			"--name", "Ana1", "--email", "not-an-email", "--password", "abc")
		if err == nil {
			t.Fatal("expected validation error")
		}

		result := output.String()
		for _, want := range []string{
			"name may only contain letters.",
			"must be a valid email.",
			"password must be at least 4 characters.",
		} {
			if !strings.Contains(result, want) {
				t.Errorf("expected %q in output, got: %s", want, result)
			}
		}
		if mock.RegisterCalls != 0 {
			t.Errorf("expected no network call on validation failure, got %d", mock.RegisterCalls)
		}
	})

	t.Run("register success", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(&tu.MockService{}, output)

		err := runCommand(t, runner, "auth", "register",
			"--name", "Ana Dias", "--email", "ana@example.com", "--password", "abcd")
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}

		if !strings.Contains(output.String(), "✓ Account created for Ana Dias") {
			t.Errorf("expected confirmation, got: %s", output.String())
		}
	})

	t.Run("register surfaces server rejection message", func(t *testing.T) {
		mock := &tu.MockService{
			RegisterFn: func(ctx context.Context, name, email, password string) (*models.User, error) {
				return nil, &services.APIError{StatusCode: 400, Message: "User already exists"}
			},
		}
		output := &bytes.Buffer{}
		runner := newTestRunner(mock, output)

		err := runCommand(t, runner, "auth", "register",
			"--name", "Ana", "--email", "ana@example.com", "--password", "abcd")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "User already exists") {
			t.Errorf("expected server message, got %v", err)
		}
	})

	t.Run("login stores the session token", func(t *testing.T) {
		store := session.NewMemoryStore()
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Config:       shared.DefaultConfig(),
			API:          &tu.MockService{},
			Output:       output,
			SessionStore: store,
		})

		err := runCommand(t, runner, "auth", "login",
			"--email", "ana@example.com", "--password", "abcd")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if !strings.Contains(output.String(), "✓ Logged in") {
			t.Errorf("expected confirmation, got: %s", output.String())
		}

		token, set, _ := store.Token()
		if !set || token != "test-token" {
			t.Errorf("expected token stored, got %q set=%v", token, set)
		}
	})

	t.Run("login requires both fields", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := newTestRunner(&tu.MockService{}, output)

		err := runCommand(t, runner, "auth", "login", "--email", "ana@example.com")
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(output.String(), "all fields required") {
			t.Errorf("expected combined violation, got: %s", output.String())
		}
	})

	t.Run("login surfaces rejection with fallback", func(t *testing.T) {
		mock := &tu.MockService{
			LoginFn: func(ctx context.Context, email, password string) (string, error) {
				return "", &services.APIError{StatusCode: 401}
			},
		}
		output := &bytes.Buffer{}
		runner := newTestRunner(mock, output)

		err := runCommand(t, runner, "auth", "login",
			"--email", "ana@example.com", "--password", "wrong")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "unable to log in") {
			t.Errorf("expected generic fallback, got %v", err)
		}
	})

	t.Run("status and logout round trip", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.SetToken("token-123")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Config:       shared.DefaultConfig(),
			API:          &tu.MockService{},
			Output:       output,
			SessionStore: store,
		})

		if err := runCommand(t, runner, "auth", "status"); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Authenticated") {
			t.Errorf("expected authenticated status, got: %s", output.String())
		}

		output.Reset()
		if err := runCommand(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Logged out") {
			t.Errorf("expected logout confirmation, got: %s", output.String())
		}

		if _, set, _ := store.Token(); set {
			t.Error("expected token cleared")
		}
	})
}
