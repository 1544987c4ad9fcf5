package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/bakeclient/internal/client/app"
	"github.com/iudanet/bakeclient/internal/client/view"
)

// Run executes one command. It is used both for one-shot invocations and
// for each line of the shell.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "home":
		return c.navigate(ctx, view.PageHome)
	case "recipes":
		return c.navigate(ctx, view.PageRecipes)
	case "users":
		return c.navigate(ctx, view.PageUsers)
	case "profile":
		return c.navigate(ctx, view.PageProfile)
	case "static":
		return c.navigate(ctx, view.PageStaticRecipes)
	case "show":
		c.printScreen()
		return nil
	case "login":
		return c.runLogin(ctx, args)
	case "register":
		return c.runRegister(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus()
	case "new-recipe":
		return c.runNewRecipe(ctx)
	case "export":
		return c.runExport(ctx, args)
	case "search":
		return c.runSearch(ctx, args)
	case "clear":
		return c.runClear(ctx)
	case "download":
		return c.runDownload(ctx, args)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", command)
	}
}

func (c *Cli) navigate(ctx context.Context, page view.Page) error {
	return c.dispatch(ctx, app.NewEvent(app.EventNavigate, "page", string(page)))
}

// dispatch sends e and prints the resulting screen.
func (c *Cli) dispatch(ctx context.Context, e app.Event) error {
	err := c.app.Dispatch(ctx, e)
	c.printScreen()
	return err
}
