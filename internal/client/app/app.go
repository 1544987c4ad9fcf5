package app

import (
	"context"
	"fmt"
	"log/slog"

	httpClient "github.com/iudanet/bakeclient/internal/client/api"
	"github.com/iudanet/bakeclient/internal/client/pages"
	"github.com/iudanet/bakeclient/internal/client/session"
	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/internal/validation"
)

// App wires the document, session, controller and pages together.
type App struct {
	Doc        *view.Document
	Session    *session.Store
	Controller *Controller
	Dispatcher *Dispatcher
	Auth       *pages.Auth
	Recipes    *pages.Recipes
	Users      *pages.Users
	Profile    *pages.Profile
	Static     *pages.StaticRecipes
	client     httpClient.ClientAPI
	logger     *slog.Logger
}

// New builds the application around an API client and a session store.
func New(client httpClient.ClientAPI, store *session.Store, logger *slog.Logger) *App {
	doc := view.NewDocument()
	ctrl := NewController(doc, store, logger)

	a := &App{
		Doc:        doc,
		Session:    store,
		Controller: ctrl,
		Dispatcher: NewDispatcher(logger),
		Auth:       pages.NewAuth(client, store, doc, ctrl, logger),
		Recipes:    pages.NewRecipes(client, store, doc, ctrl, logger),
		Users:      pages.NewUsers(client, doc, logger),
		Profile:    pages.NewProfile(client, store, doc, logger),
		Static:     pages.NewStaticRecipes(client, doc, ctrl, logger),
		client:     client,
		logger:     logger,
	}

	ctrl.SetHooks(map[view.Page]Hook{
		view.PageRecipes:       a.Recipes.Load,
		view.PageUsers:         a.Users.Load,
		view.PageProfile:       a.Profile.Load,
		view.PageStaticRecipes: a.Static.Load,
		view.PageLogin:         a.Auth.ResetLogin,
		view.PageRegister:      a.Auth.ResetRegister,
	})
	a.registerHandlers()
	ctrl.UpdateAffordances()

	return a
}

// Start restores a stored session and shows the home page.
func (a *App) Start(ctx context.Context) error {
	restored, err := a.Session.Restore(ctx, a.client)
	if err != nil {
		a.logger.Error("failed to restore session", "error", err)
	}
	a.logger.Debug("session restore finished", "authenticated", restored)

	a.Controller.ShowPage(ctx, string(view.PageHome))
	return err
}

// Dispatch forwards an event to the dispatcher.
func (a *App) Dispatch(ctx context.Context, e Event) error {
	return a.Dispatcher.Dispatch(ctx, e)
}

func (a *App) registerHandlers() {
	d := a.Dispatcher

	d.Register(EventNavigate, func(ctx context.Context, e Event) error {
		a.Controller.ShowPage(ctx, e.Get("page"))
		return nil
	})

	d.Register(EventLogin, func(ctx context.Context, e Event) error {
		a.Doc.SetField(view.FormLogin, "username", e.Get("username"))
		a.Doc.SetField(view.FormLogin, "password", e.Get("password"))
		a.Auth.Login(ctx)
		return nil
	})

	d.Register(EventRegister, func(ctx context.Context, e Event) error {
		for _, f := range []validation.Field{validation.FieldUsername, validation.FieldEmail, validation.FieldPassword} {
			if v, ok := e.Data[string(f)]; ok {
				a.Doc.SetField(view.FormRegister, string(f), v)
			}
		}
		a.Auth.Register(ctx)
		return nil
	})

	d.Register(EventFieldInput, func(_ context.Context, e Event) error {
		a.Auth.FieldInput(validation.Field(e.Get("field")), e.Get("value"))
		return nil
	})

	d.Register(EventLogout, func(ctx context.Context, _ Event) error {
		return a.Controller.Logout(ctx)
	})

	d.Register(EventShowCreateForm, func(context.Context, Event) error {
		a.Controller.ShowCreateRecipeForm()
		return nil
	})

	d.Register(EventHideCreateForm, func(context.Context, Event) error {
		a.Controller.HideCreateRecipeForm()
		return nil
	})

	d.Register(EventCreateRecipe, func(ctx context.Context, e Event) error {
		a.Doc.SetField(view.FormNewRecipe, "title", e.Get("title"))
		a.Doc.SetField(view.FormNewRecipe, "content", e.Get("content"))
		a.Recipes.Create(ctx)
		return nil
	})

	d.Register(EventStaticSearch, func(_ context.Context, e Event) error {
		a.Static.Search(e.Get("term"))
		return nil
	})

	d.Register(EventStaticClear, func(context.Context, Event) error {
		a.Static.Clear()
		return nil
	})

	d.Register(EventDownload, func(ctx context.Context, e Event) error {
		_, err := a.Static.Download(ctx, e.Get("file"), e.Get("dir"))
		return err
	})

	d.Register(EventExport, func(_ context.Context, e Event) error {
		path := e.Get("path")
		if err := a.Recipes.Export(path); err != nil {
			a.Controller.ShowMessage("Export failed: "+err.Error(), render.KindError)
			return fmt.Errorf("export recipes: %w", err)
		}
		a.Controller.ShowMessage("Exported recipes to "+path, render.KindSuccess)
		return nil
	})
}
