package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/bakeclient/internal/client/app"
	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	if err := c.app.Dispatch(ctx, app.NewEvent(app.EventNavigate, "page", string(view.PageLogin))); err != nil {
		return err
	}

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		username, err = c.io.ReadInput("Username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	return c.dispatch(ctx, app.NewEvent(app.EventLogin, "username", username, "password", password))
}

// runRegister asks for each field in turn. Every answer goes through the
// same sanitizing as a keystroke in the form, and the hint it produces is
// shown before the next prompt.
func (c *Cli) runRegister(ctx context.Context) error {
	if err := c.app.Dispatch(ctx, app.NewEvent(app.EventNavigate, "page", string(view.PageRegister))); err != nil {
		return err
	}

	fields := []struct {
		field  validation.Field
		prompt string
		secret bool
	}{
		{field: validation.FieldUsername, prompt: "Username: "},
		{field: validation.FieldEmail, prompt: "Email: "},
		{field: validation.FieldPassword, prompt: "Password: ", secret: true},
	}

	for _, f := range fields {
		read := c.io.ReadInput
		if f.secret {
			read = c.io.ReadPassword
		}
		value, err := read(f.prompt)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.field, err)
		}

		e := app.NewEvent(app.EventFieldInput, "field", string(f.field), "value", value)
		if err := c.app.Dispatch(ctx, e); err != nil {
			return err
		}
		if hint := render.Text(c.app.Doc.Section(view.SectionRegisterMessage)); hint != "" {
			c.io.Printf("  %s\n", hint)
		}
	}

	return c.dispatch(ctx, app.NewEvent(app.EventRegister))
}

func (c *Cli) runLogout(ctx context.Context) error {
	return c.dispatch(ctx, app.NewEvent(app.EventLogout))
}

func (c *Cli) runStatus() error {
	status := statusView{Server: c.server}

	if user, ok := c.app.Session.User(); ok {
		status.Authenticated = true
		status.Username = user.Username
		status.UserID = user.ID
		if exp, ok := c.app.Session.TokenExpiry(); ok {
			status.HasExpiry = true
			status.ExpiresAt = exp.Format(time.RFC3339)
			remaining := time.Until(exp)
			status.Expired = remaining <= 0
			status.Remaining = remaining.Round(time.Second).String()
		}
	}

	return statusTmpl.Execute(c.io, status)
}
