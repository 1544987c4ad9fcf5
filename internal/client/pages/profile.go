package pages

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httpClient "github.com/iudanet/bakeclient/internal/client/api"
	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/pkg/api"
)

// ProfileAPI is the backend surface used by the profile page.
type ProfileAPI interface {
	GetUser(ctx context.Context, id int64) (*api.User, error)
}

// Profile shows fresh data for the logged in user.
type Profile struct {
	client  ProfileAPI
	current CurrentUser
	doc     *view.Document
	logger  *slog.Logger
}

func NewProfile(client ProfileAPI, current CurrentUser, doc *view.Document, logger *slog.Logger) *Profile {
	return &Profile{client: client, current: current, doc: doc, logger: logger}
}

// Load fetches /users/{id} for the session user.
func (p *Profile) Load(ctx context.Context) {
	user, ok := p.current.User()
	if !ok {
		p.doc.SetSection(view.SectionProfile, render.Message(render.KindError, "You must be logged in to view your profile."))
		return
	}

	fresh, err := p.client.GetUser(ctx, user.ID)
	if err != nil {
		p.logger.Warn("failed to load profile", "user_id", user.ID, "error", err)
		var statusErr *httpClient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			p.doc.SetSection(view.SectionProfile, render.Message(render.KindError, "User not found."))
			return
		}
		p.doc.SetSection(view.SectionProfile, render.Message(render.KindError, failureMessage(err, "Failed to load profile.")))
		return
	}

	p.doc.SetSection(view.SectionProfile, render.Profile(*fresh))
}
