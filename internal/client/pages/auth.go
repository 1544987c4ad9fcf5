package pages

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/internal/validation"
	"github.com/iudanet/bakeclient/pkg/api"
)

// AuthAPI is the backend surface used by the login and register forms.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
}

// SessionWriter starts a session after a successful login.
type SessionWriter interface {
	SetSession(ctx context.Context, user api.User, token string) error
}

const registrationSuccess = "Registration successful"

// DefaultRedirectDelay is how long the register page shows its success
// message before switching to login.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Auth drives the login and register forms.
type Auth struct {
	client        AuthAPI
	session       SessionWriter
	doc           *view.Document
	nav           Navigator
	logger        *slog.Logger
	RedirectDelay time.Duration
}

func NewAuth(client AuthAPI, session SessionWriter, doc *view.Document, nav Navigator, logger *slog.Logger) *Auth {
	return &Auth{
		client:        client,
		session:       session,
		doc:           doc,
		nav:           nav,
		logger:        logger,
		RedirectDelay: DefaultRedirectDelay,
	}
}

// ResetLogin clears the login form and its message area.
func (a *Auth) ResetLogin(context.Context) {
	a.doc.ResetForm(view.FormLogin)
	a.doc.ClearSection(view.SectionLoginMessage)
}

// ResetRegister clears the register form and its message area.
func (a *Auth) ResetRegister(context.Context) {
	a.doc.ResetForm(view.FormRegister)
	a.doc.ClearSection(view.SectionRegisterMessage)
}

// Login submits the login form.
func (a *Auth) Login(ctx context.Context) {
	username := a.doc.Field(view.FormLogin, "username")
	password := a.doc.Field(view.FormLogin, "password")

	a.logger.Debug("attempting login", "username", username)

	resp, err := a.client.Login(ctx, api.LoginRequest{Username: username, Password: password})
	switch {
	case err != nil:
	case resp.AccessToken == "":
		err = errors.New("response carries no access token")
	case resp.User.IsZero():
		err = errors.New("response carries no user")
	}
	if err != nil {
		a.logger.Warn("login failed", "username", username, "error", err)
		a.doc.SetSection(view.SectionLoginMessage, render.Message(render.KindError, failureMessage(err, "Login failed")))
		return
	}

	if err := a.session.SetSession(ctx, resp.User, resp.AccessToken); err != nil {
		a.logger.Error("failed to store session", "error", err)
		a.doc.SetSection(view.SectionLoginMessage, render.Message(render.KindError, "Login failed: "+err.Error()))
		return
	}

	a.nav.ShowPage(ctx, string(view.PageRecipes))
	a.nav.ShowMessage("Login successful!", render.KindSuccess)
}

// Register validates and submits the register form. All violated rules
// are reported together and nothing is sent while any remain.
func (a *Auth) Register(ctx context.Context) {
	username := strings.TrimSpace(a.doc.Field(view.FormRegister, string(validation.FieldUsername)))
	email := strings.TrimSpace(a.doc.Field(view.FormRegister, string(validation.FieldEmail)))
	password := a.doc.Field(view.FormRegister, string(validation.FieldPassword))

	if err := validation.ValidateRegistration(username, email, password); err != nil {
		var vErr *validation.ValidationError
		if errors.As(err, &vErr) {
			a.doc.SetSection(view.SectionRegisterMessage, render.Message(render.KindError, vErr.Problems...))
		}
		return
	}

	a.logger.Debug("attempting registration", "username", username, "password_length", len(password))

	_, err := a.client.Register(ctx, api.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		a.logger.Warn("registration failed", "username", username, "error", err)
		a.doc.SetSection(view.SectionRegisterMessage, render.Message(render.KindError, failureMessage(err, "Registration failed")))
		return
	}

	a.doc.SetSection(view.SectionRegisterMessage, render.Message(render.KindSuccess, registrationSuccess+"! Welcome "+username))
	a.doc.ResetForm(view.FormRegister)

	redirectCtx := context.WithoutCancel(ctx)
	time.AfterFunc(a.RedirectDelay, func() {
		a.nav.ShowPage(redirectCtx, string(view.PageLogin))
	})
}

// FieldInput handles one keystroke in a guarded register field: < and >
// are stripped at once and the field is re-validated. At most one message
// is shown; a standing success message is left alone.
func (a *Auth) FieldInput(field validation.Field, value string) string {
	cleaned, msg := validation.SanitizeField(field, value)
	a.doc.SetField(view.FormRegister, string(field), cleaned)

	switch {
	case msg != "":
		a.doc.SetSection(view.SectionRegisterMessage, render.Message(render.KindError, msg))
	case !strings.Contains(a.doc.Section(view.SectionRegisterMessage), registrationSuccess):
		a.doc.ClearSection(view.SectionRegisterMessage)
	}
	return cleaned
}
