package apitest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/bakeclient/pkg/api"
)

// handleLogin обрабатывает POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	var found *storedUser
	for _, u := range s.users {
		if u.user.Username == req.Username {
			found = &u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || found.password != req.Password {
		s.sendError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := s.signToken(found.user)
	if err != nil {
		s.sendError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.sendJSON(w, api.LoginResponse{AccessToken: token, TokenType: "bearer", User: found.user}, http.StatusOK)
}

// handleRegister обрабатывает POST /users
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.sendError(w, "Username, email and password are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.user.Username == req.Username {
			s.mu.Unlock()
			s.sendError(w, "Username already exists", http.StatusConflict)
			return
		}
	}
	s.addUserLocked(req.Username, req.Email, req.Password)
	s.mu.Unlock()

	s.sendJSON(w, api.RegisterResponse{Message: "User created successfully"}, http.StatusCreated)
}

// handleListUsers обрабатывает GET /users
func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := make([]api.User, len(s.users))
	for i, u := range s.users {
		users[i] = u.user
	}
	s.mu.Unlock()

	s.sendJSON(w, api.UsersResponse{Users: users}, http.StatusOK)
}

// handleGetUser обрабатывает GET /users/{id}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.sendError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	asList := s.userAsList
	var user *api.User
	for i := range s.users {
		if s.users[i].user.ID == id {
			u := s.users[i].user
			user = &u
			break
		}
	}
	s.mu.Unlock()

	if user == nil {
		s.sendError(w, "User not found", http.StatusNotFound)
		return
	}

	if asList {
		s.sendJSON(w, map[string]any{"user": []api.User{*user}}, http.StatusOK)
		return
	}
	s.sendJSON(w, map[string]any{"user": user}, http.StatusOK)
}

// handleMe обрабатывает GET /me и возвращает payload токена
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, map[string]any{"user": claimsFrom(r.Context())}, http.StatusOK)
}

// handleListRecipes обрабатывает GET /recipes
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	s.sendJSON(w, api.RecipesResponse{
		AuthenticatedAs: claims.Username,
		Recipes:         s.Recipes(),
	}, http.StatusOK)
}

// handleCreateRecipe обрабатывает POST /recipes
func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req api.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Content == "" {
		s.sendError(w, "Title and content are required", http.StatusBadRequest)
		return
	}

	s.AddRecipe(req.Title, req.Content, claims.Username)
	s.sendJSON(w, api.CreateRecipeResponse{Message: "Recipe created", Author: claims.Username}, http.StatusCreated)
}

// handleStaticList обрабатывает GET /recipes/static/list
func (s *Server) handleStaticList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	names := s.fileNames()
	s.mu.Unlock()

	s.sendJSON(w, api.StaticListResponse{Files: names}, http.StatusOK)
}

// handleStaticFile обрабатывает GET /recipes/static?file_name=...
func (s *Server) handleStaticFile(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file_name")

	s.mu.Lock()
	data, ok := s.files[name]
	s.mu.Unlock()

	if !ok {
		s.sendError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// sendJSON отправляет JSON ответ
func (s *Server) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// sendError отправляет JSON ответ с ошибкой
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	s.sendJSON(w, api.ErrorResponse{Error: message}, statusCode)
}
