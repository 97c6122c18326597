package main

import (
	"context"
	"errors"
	"os"

	"github.com/torrentio/cli/internal/services"
	"github.com/torrentio/cli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	apiService := services.NewTorrentioService(config.API.BaseURL, nil, config.API.RateLimit)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		API:        apiService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "torrentio",
		Usage:    "Browse the Torrentio game catalog from your terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
