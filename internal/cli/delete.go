package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/memory"
)

func deleteCommand() *cli.Command {
	var cfg config

	flags := storageFlags(&cfg)
	flags = append(flags, providerFlags(&cfg)...)

	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a memory by ID",
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

			removed, err := store.Delete(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to delete memory", goerr.V("id", id))
			}

			if removed {
				fmt.Fprintf(c.Root().Writer, "deleted %s\n", id)
			} else {
				fmt.Fprintf(c.Root().Writer, "not found %s\n", id)
			}
			return nil
		},
	}
}
