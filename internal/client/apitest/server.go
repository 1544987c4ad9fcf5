// Package apitest runs an in-memory recipe backend for tests. It speaks the
// same JSON as the real service, including its quirks: GET /me echoes the
// token payload with user_id, and GET /users/{id} can answer with a list.
package apitest

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/bakeclient/pkg/api"
)

const createdAtLayout = "2006-01-02 15:04:05"

// Request is one request as the backend saw it.
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
}

type storedUser struct {
	password string
	user     api.User
}

// Server is a fake recipe backend.
type Server struct {
	*httptest.Server

	logger       *slog.Logger
	files        map[string][]byte
	secret       []byte
	users        []storedUser
	recipes      []api.Recipe
	requests     []Request
	nextUserID   int64
	nextRecipeID int64
	mu           sync.Mutex
	userAsList   bool
	rejectTokens bool
}

// New starts a backend that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		files:        make(map[string][]byte),
		secret:       []byte("apitest-secret"),
		nextUserID:   1,
		nextRecipeID: 1,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.recoverPanic)

	r.Post("/login", s.handleLogin)
	r.Post("/users", s.handleRegister)
	r.Get("/users", s.handleListUsers)
	r.Get("/users/{id}", s.handleGetUser)
	r.Get("/recipes/static/list", s.handleStaticList)
	r.Get("/recipes/static", s.handleStaticFile)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/me", s.handleMe)
		r.Get("/recipes", s.handleListRecipes)
		r.Post("/recipes", s.handleCreateRecipe)
	})

	return r
}

// AddUser registers a user directly.
func (s *Server) AddUser(username, email, password string) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password)
}

func (s *Server) addUserLocked(username, email, password string) api.User {
	u := api.User{
		ID:        s.nextUserID,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC().Format(createdAtLayout),
	}
	s.nextUserID++
	s.users = append(s.users, storedUser{user: u, password: password})
	return u
}

// AddRecipe stores a recipe directly.
func (s *Server) AddRecipe(title, content, author string) api.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addRecipeLocked(title, content, author)
}

func (s *Server) addRecipeLocked(title, content, author string) api.Recipe {
	rec := api.Recipe{
		ID:        s.nextRecipeID,
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC().Format(createdAtLayout),
	}
	s.nextRecipeID++
	s.recipes = append(s.recipes, rec)
	return rec
}

// AddFile publishes a static recipe file.
func (s *Server) AddFile(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
}

// SetUserAsList makes GET /users/{id} wrap the user in a list.
func (s *Server) SetUserAsList(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userAsList = v
}

// SetRejectTokens makes every authenticated endpoint answer 401.
func (s *Server) SetRejectTokens(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectTokens = v
}

// Recipes returns the stored recipes.
func (s *Server) Recipes() []api.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the latest request for method and path.
func (s *Server) LastRequest(method, path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		r := s.requests[i]
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Request{}, false
}

// Count returns how many requests hit method and path.
func (s *Server) Count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) fileNames() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// record сохраняет каждый запрос для проверок в тестах
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// recoverPanic перехватывает panic в обработчике и отвечает 500
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered", "error", err, "method", r.Method, "path", r.URL.Path)
				s.sendError(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
