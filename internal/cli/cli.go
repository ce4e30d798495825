package cli

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/viant/vecmem/internal/logging"
)

// Error is returned by Run when a command fails.
type Error struct {
	Code    int
	Message string
}

// Run executes the vecmem command line with argv.
func Run(ctx context.Context, argv []string) *Error {
	if err := newApp(os.Stdin, os.Stdout).Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}
	return nil
}

func newApp(r io.Reader, w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "vecmem",
		Usage:  "Store and recall memories by vector similarity",
		Reader: r,
		Writer: w,
		Commands: []*cli.Command{
			initCommand(),
			storeCommand(),
			searchCommand(),
			getCommand(),
			deleteCommand(),
		},
	}
}
