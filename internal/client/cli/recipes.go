package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/iudanet/bakeclient/internal/client/app"
)

// runNewRecipe opens the create form, reads title and content and submits.
// A read error closes the form again.
func (c *Cli) runNewRecipe(ctx context.Context) error {
	if err := c.app.Dispatch(ctx, app.NewEvent(app.EventShowCreateForm)); err != nil {
		return err
	}

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		_ = c.app.Dispatch(ctx, app.NewEvent(app.EventHideCreateForm))
		return fmt.Errorf("failed to read title: %w", err)
	}
	content, err := c.io.ReadInput("Content: ")
	if err != nil {
		_ = c.app.Dispatch(ctx, app.NewEvent(app.EventHideCreateForm))
		return fmt.Errorf("failed to read content: %w", err)
	}

	return c.dispatch(ctx, app.NewEvent(app.EventCreateRecipe, "title", title, "content", content))
}

// runExport writes the recipes shown on the recipes page to a workbook.
// The list is loaded first when the page has not been opened yet.
func (c *Cli) runExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("missing file name. Usage: export <file.xlsx>")
	}
	path := args[0]
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}

	if len(c.app.Recipes.Loaded()) == 0 {
		if err := c.app.Dispatch(ctx, app.NewEvent(app.EventNavigate, "page", "recipes")); err != nil {
			return err
		}
	}

	return c.dispatch(ctx, app.NewEvent(app.EventExport, "path", path))
}
