// Package app is the page controller: it decides which page is visible,
// runs each page's activation hook, keeps the header in sync with the
// session and shows transient messages.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/bakeclient/internal/client/session"
	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/models"
	"github.com/iudanet/bakeclient/internal/render"
)

// MessageTTL is how long a transient message stays on its page.
const MessageTTL = 5 * time.Second

// Hook loads a page's data when it becomes visible.
type Hook func(ctx context.Context)

// Controller owns the active-page state.
type Controller struct {
	doc        *view.Document
	session    *session.Store
	logger     *slog.Logger
	hooks      map[view.Page]Hook
	messageTTL time.Duration
	mu         sync.RWMutex
}

// NewController создает контроллер и подписывает его на изменения сессии
func NewController(doc *view.Document, store *session.Store, logger *slog.Logger) *Controller {
	c := &Controller{
		doc:        doc,
		session:    store,
		logger:     logger,
		hooks:      make(map[view.Page]Hook),
		messageTTL: MessageTTL,
	}
	store.OnChange(func(models.Session) {
		c.UpdateAffordances()
	})
	return c
}

// SetHooks installs the activation hook table.
func (c *Controller) SetHooks(hooks map[view.Page]Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = hooks
}

// ShowPage activates the named page and runs its hook. Unknown names are
// ignored and leave the current page in place.
func (c *Controller) ShowPage(ctx context.Context, name string) bool {
	page, ok := view.ParsePage(name)
	if !ok {
		c.logger.Debug("unknown page", "page", name)
		return false
	}

	c.doc.Activate(page)

	c.mu.RLock()
	hook := c.hooks[page]
	c.mu.RUnlock()

	if hook != nil {
		hook(ctx)
	}
	return true
}

// Active returns the visible page.
func (c *Controller) Active() view.Page {
	return c.doc.Active()
}

// UpdateAffordances shows the greeting, create button and profile link to
// a logged in user and the login/register prompt to everyone else.
func (c *Controller) UpdateAffordances() {
	user, ok := c.session.User()
	if !ok {
		c.doc.SetAffordances(view.Affordances{ShowAuthPrompt: true})
		return
	}
	c.doc.SetAffordances(view.Affordances{
		Greeting:         "Hello, " + user.Username,
		ShowUserSection:  true,
		ShowCreateRecipe: true,
		ShowProfileLink:  true,
	})
}

// ShowMessage attaches a message to the active page and schedules its
// removal. The removal cannot be cancelled.
func (c *Controller) ShowMessage(text string, kind render.Kind) string {
	page := c.doc.Active()
	id := uuid.NewString()
	c.doc.AppendMessage(page, view.Message{ID: id, Text: text, Kind: kind})

	time.AfterFunc(c.messageTTL, func() {
		c.doc.RemoveMessage(page, id)
	})
	return id
}

// ShowCreateRecipeForm opens the create-recipe form.
func (c *Controller) ShowCreateRecipeForm() {
	c.doc.SetCreateFormOpen(true)
}

// HideCreateRecipeForm closes and resets the create-recipe form.
func (c *Controller) HideCreateRecipeForm() {
	c.doc.SetCreateFormOpen(false)
	c.doc.ResetForm(view.FormNewRecipe)
}

// Logout ends the session and returns to the home page.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.session.ClearSession(ctx)
	if err != nil {
		c.logger.Error("failed to clear session", "error", err)
	}
	c.ShowPage(ctx, string(view.PageHome))
	c.ShowMessage("Logged out successfully", render.KindSuccess)
	return err
}
