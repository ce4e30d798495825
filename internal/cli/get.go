package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/memory"
)

func getCommand() *cli.Command {
	var cfg config

	flags := storageFlags(&cfg)
	flags = append(flags, providerFlags(&cfg)...)
	flags = append(flags, outputFlags(&cfg)...)

	return &cli.Command{
		Name:      "get",
		Usage:     "Show a memory by ID",
		ArgsUsage: "<id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			id := memory.ID(c.Args().First())
			if id == "" {
				return goerr.New("id is required")
			}

			store, db, err := cfg.newLookupStore()
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := store.Get(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
			}
			if m == nil {
				return goerr.New("memory not found", goerr.V("id", id))
			}

			view, err := newMemoryView(m)
			if err != nil {
				return err
			}
			return write(c.Root().Writer, cfg.format, view)
		},
	}
}
