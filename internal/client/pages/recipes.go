package pages

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/pkg/api"
)

// RecipesAPI is the backend surface used by the recipes page.
type RecipesAPI interface {
	ListRecipes(ctx context.Context) ([]api.Recipe, error)
	CreateRecipe(ctx context.Context, req api.CreateRecipeRequest) (*api.CreateRecipeResponse, error)
}

// Recipes loads, creates and exports recipes.
type Recipes struct {
	client RecipesAPI
	auth   Authenticator
	doc    *view.Document
	nav    Navigator
	logger *slog.Logger
	loaded []api.Recipe
	mu     sync.Mutex
}

// NewRecipes создает страницу рецептов
func NewRecipes(client RecipesAPI, auth Authenticator, doc *view.Document, nav Navigator, logger *slog.Logger) *Recipes {
	return &Recipes{
		client: client,
		auth:   auth,
		doc:    doc,
		nav:    nav,
		logger: logger,
	}
}

// Load fetches the recipe list into the recipes section.
func (r *Recipes) Load(ctx context.Context) {
	if !r.auth.IsAuthenticated() {
		r.doc.SetSection(view.SectionRecipesList, render.Message(render.KindError, "Please login to view recipes"))
		return
	}

	recipes, err := r.client.ListRecipes(ctx)
	if err != nil {
		r.logger.Warn("failed to load recipes", "error", err)
		r.doc.SetSection(view.SectionRecipesList, render.Message(render.KindError, failureMessage(err, "Failed to load recipes")))
		return
	}

	r.mu.Lock()
	r.loaded = recipes
	r.mu.Unlock()

	r.doc.SetSection(view.SectionRecipesList, render.Recipes(recipes))
}

// Create submits the new-recipe form. On success the form is cleared and
// hidden and the list is fetched again; nothing is inserted locally.
func (r *Recipes) Create(ctx context.Context) {
	if !r.auth.IsAuthenticated() {
		r.nav.ShowMessage("Please login to create recipes", render.KindError)
		return
	}

	req := api.CreateRecipeRequest{
		Title:   r.doc.Field(view.FormNewRecipe, "title"),
		Content: r.doc.Field(view.FormNewRecipe, "content"),
	}

	if _, err := r.client.CreateRecipe(ctx, req); err != nil {
		r.logger.Warn("failed to create recipe", "error", err)
		r.nav.ShowMessage(failureMessage(err, "Failed to create recipe"), render.KindError)
		return
	}

	r.nav.ShowMessage("Recipe created successfully!", render.KindSuccess)
	r.doc.ResetForm(view.FormNewRecipe)
	r.nav.HideCreateRecipeForm()
	r.Load(ctx)
}

// Loaded returns the recipes from the last successful load.
func (r *Recipes) Loaded() []api.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]api.Recipe, len(r.loaded))
	copy(out, r.loaded)
	return out
}

const exportSheet = "Recipes"

// Export writes the last loaded list to an xlsx workbook at path.
func (r *Recipes) Export(path string) error {
	recipes := r.Loaded()
	if len(recipes) == 0 {
		return fmt.Errorf("no recipes loaded, open the recipes page first")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"ID", "Title", "Author", "Created", "Content"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, recipe := range recipes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []any{recipe.ID, recipe.Title, recipe.Author, recipe.CreatedAt, recipe.Content}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write recipe %d: %w", recipe.ID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	r.logger.Info("recipes exported", "path", path, "count", len(recipes))
	return nil
}
