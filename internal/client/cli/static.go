package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/bakeclient/internal/client/app"
	"github.com/iudanet/bakeclient/internal/client/view"
)

// ensureStatic opens the static recipes page unless it is already shown.
func (c *Cli) ensureStatic(ctx context.Context) error {
	if c.app.Controller.Active() == view.PageStaticRecipes {
		return nil
	}
	return c.app.Dispatch(ctx, app.NewEvent(app.EventNavigate, "page", string(view.PageStaticRecipes)))
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if err := c.ensureStatic(ctx); err != nil {
		return err
	}
	return c.dispatch(ctx, app.NewEvent(app.EventStaticSearch, "term", strings.Join(args, " ")))
}

func (c *Cli) runClear(ctx context.Context) error {
	if err := c.ensureStatic(ctx); err != nil {
		return err
	}
	return c.dispatch(ctx, app.NewEvent(app.EventStaticClear))
}

func (c *Cli) runDownload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dir := fs.String("dir", ".", "directory to save into")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	name := strings.Join(fs.Args(), " ")
	if name == "" {
		return fmt.Errorf("missing file name. Usage: download [-dir DIR] <file name>")
	}

	return c.dispatch(ctx, app.NewEvent(app.EventDownload, "file", name, "dir", *dir))
}
