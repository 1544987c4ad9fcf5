package api

// Recipe представляет рецепт, как его отдаёт бэкенд
type Recipe struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at,omitempty"`
	ID        int64  `json:"id"`
}

// RecipesResponse is returned by GET /recipes.
type RecipesResponse struct {
	AuthenticatedAs string   `json:"authenticated_as,omitempty"`
	Recipes         []Recipe `json:"recipes"`
}

// CreateRecipeRequest представляет запрос на создание рецепта
type CreateRecipeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateRecipeResponse представляет ответ на создание рецепта
type CreateRecipeResponse struct {
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
}

// StaticListResponse is returned by GET /recipes/static/list.
type StaticListResponse struct {
	Files []string `json:"files"`
}
