package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// DevelopersList lists the game studios in the catalog.
func (r *Runner) DevelopersList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.loadCatalog(ctx, cmd.Bool("cached")); err != nil {
		return err
	}

	developers := r.engine.Developers().All()

	if useJSON {
		return r.writeJSON(developers, pretty)
	}

	if len(developers) == 0 {
		return r.writePlain("No developers found.\n")
	}

	r.writePlainHeader("Developers")
	for i, dev := range developers {
		r.writePlain("%3d. %s - founded %d, %s\n", i+1, dev.Name, dev.Founded, dev.Country)
	}
	return nil
}
