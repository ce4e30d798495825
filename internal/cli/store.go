package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/memory"
)

func storeCommand() *cli.Command {
	var (
		cfg        config
		typ        string
		source     string
		tags       []string
		confidence float64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Memory type",
			Value:       "note",
			Destination: &typ,
		},
		&cli.StringFlag{
			Name:        "source",
			Aliases:     []string{"s"},
			Usage:       "Where the memory came from",
			Value:       "cli",
			Destination: &source,
		},
		&cli.StringSliceFlag{
			Name:        "tag",
			Usage:       "Tag to attach (repeatable)",
			Destination: &tags,
		},
		&cli.FloatFlag{
			Name:        "confidence",
			Usage:       "Confidence score",
			Value:       1,
			Destination: &confidence,
		},
	}
	flags = append(flags, storageFlags(&cfg)...)
	flags = append(flags, providerFlags(&cfg)...)
	flags = append(flags, outputFlags(&cfg)...)

	return &cli.Command{
		Name:      "store",
		Usage:     "Store a memory; content is a JSON document, or - to read it from stdin",
		ArgsUsage: "<json>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := cfg.setup(ctx, c)
			if err != nil {
				return err
			}

			if c.Args().Len() != 1 {
				return goerr.New("exactly one content argument is required")
			}
			content := c.Args().First()
			if content == "-" {
				data, err := io.ReadAll(c.Root().Reader)
				if err != nil {
					return goerr.Wrap(err, "failed to read content from stdin")
				}
				content = string(data)
			}

			store, db, err := cfg.newStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := store.StoreMemory(ctx, memory.NewMemory{
				Type:       typ,
				Content:    json.RawMessage(content),
				Source:     source,
				Tags:       tags,
				Confidence: confidence,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to store memory")
			}

			view, err := newMemoryView(m)
			if err != nil {
				return err
			}
			return write(c.Root().Writer, cfg.format, view)
		},
	}
}
