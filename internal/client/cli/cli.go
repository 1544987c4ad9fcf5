// Package cli is the terminal front end: it turns typed commands into
// dispatched events and prints the active page after each one.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/iudanet/bakeclient/internal/client/app"
	"github.com/iudanet/bakeclient/internal/client/iocli"
)

const prompt = "bake> "

type Cli struct {
	io     iocli.IO
	app    *app.App
	logger *slog.Logger
	server string
}

func New(io iocli.IO, application *app.App, server string, logger *slog.Logger) *Cli {
	return &Cli{
		io:     io,
		app:    application,
		logger: logger,
		server: server,
	}
}

// Shell reads commands until quit, EOF or ctx is done. Command errors are
// printed and the loop goes on.
func (c *Cli) Shell(ctx context.Context) error {
	c.io.Printf("%s", shellBanner)
	c.printScreen()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := c.io.ReadInput(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.io.Println()
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		command, args := fields[0], fields[1:]
		if command == "quit" || command == "exit" {
			return nil
		}

		if err := c.Run(ctx, command, args); err != nil {
			c.io.Printf("Error: %v\n", err)
		}
	}
}
