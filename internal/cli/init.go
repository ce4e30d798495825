package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/memory"
)

func initCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "init",
		Usage: "Create the memories table for the configured dimension",
		Flags: storageFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			db, err := cfg.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := memory.EnsureSchema(ctx, db, cfg.table, int(cfg.dimensions)); err != nil {
				return goerr.Wrap(err, "failed to initialize schema")
			}

			fmt.Fprintf(c.Root().Writer, "initialized %s (dim=%d)\n", cfg.table, cfg.dimensions)
			return nil
		},
	}
}
