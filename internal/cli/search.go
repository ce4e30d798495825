package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/memory"
)

func searchCommand() *cli.Command {
	var (
		cfg           config
		limit         int64
		minSimilarity float64
		tags          []string
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum number of memories to return",
			Value:       memory.DefaultLimit,
			Sources:     cli.EnvVars("VECMEM_SEARCH_LIMIT"),
			Destination: &limit,
		},
		&cli.FloatFlag{
			Name:        "min-similarity",
			Usage:       "Minimum similarity in [0,1]",
			Value:       memory.DefaultMinSimilarity,
			Sources:     cli.EnvVars("VECMEM_MIN_SIMILARITY"),
			Destination: &minSimilarity,
		},
		&cli.StringSliceFlag{
			Name:        "tag",
			Usage:       "Only return memories carrying this tag (repeatable)",
			Destination: &tags,
		},
	}
	flags = append(flags, storageFlags(&cfg)...)
	flags = append(flags, providerFlags(&cfg)...)
	flags = append(flags, outputFlags(&cfg)...)

	return &cli.Command{
		Name:      "search",
		Usage:     "Search memories by similarity to a query",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			query := strings.Join(c.Args().Slice(), " ")
			if query == "" {
				return goerr.New("query is required")
			}

			store, db, err := cfg.newStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			opts := []memory.SearchOption{
				memory.WithLimit(int(limit)),
				memory.WithMinSimilarity(minSimilarity),
			}
			if len(tags) > 0 {
				opts = append(opts, memory.WithTags(tags...))
			}

			matches, err := store.Search(ctx, query, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to search memories")
			}

			views, err := newMatchViews(matches)
			if err != nil {
				return err
			}
			return write(c.Root().Writer, cfg.format, views)
		},
	}
}
