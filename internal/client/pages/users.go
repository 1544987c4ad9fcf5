package pages

import (
	"context"
	"log/slog"

	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/pkg/api"
)

// UsersAPI is the backend surface used by the users page.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]api.User, error)
}

// Users loads the public user list.
type Users struct {
	client UsersAPI
	doc    *view.Document
	logger *slog.Logger
}

func NewUsers(client UsersAPI, doc *view.Document, logger *slog.Logger) *Users {
	return &Users{client: client, doc: doc, logger: logger}
}

// Load fetches the user list into the users section.
func (u *Users) Load(ctx context.Context) {
	users, err := u.client.ListUsers(ctx)
	if err != nil {
		u.logger.Warn("failed to load users", "error", err)
		u.doc.SetSection(view.SectionUsersList, render.Message(render.KindError, failureMessage(err, "Failed to load users")))
		return
	}
	u.doc.SetSection(view.SectionUsersList, render.Users(users))
}
