package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/bakeclient/pkg/api"
)

// ClientAPI is the set of backend calls the pages issue.
type ClientAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Me(ctx context.Context, token string) (*api.User, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	GetUser(ctx context.Context, id int64) (*api.User, error)
	ListRecipes(ctx context.Context) ([]api.Recipe, error)
	CreateRecipe(ctx context.Context, req api.CreateRecipeRequest) (*api.CreateRecipeResponse, error)
	ListStaticFiles(ctx context.Context) ([]string, error)
	StaticFileURL(fileName string) string
	DownloadStaticFile(ctx context.Context, fileName string, w io.Writer) (int64, error)
}

// TokenSource отдаёт текущий bearer token; пустая строка означает, что
// пользователь не авторизован.
type TokenSource interface {
	Token() string
}

// Response is a decoded-on-demand backend answer.
type Response struct {
	Data   json.RawMessage
	Status int
	OK     bool
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.Data, v)
}

// ErrorMessage returns the backend's "error" field, or "" if absent.
func (r *Response) ErrorMessage() string {
	var errResp api.ErrorResponse
	if len(r.Data) == 0 || json.Unmarshal(r.Data, &errResp) != nil {
		return ""
	}
	return errResp.Error
}

// Client представляет HTTP клиент для взаимодействия с бэкендом рецептов.
// Запросы выполняются ровно один раз: повторов нет, таймаута на клиенте
// тоже нет, единственная граница ожидания задаётся контекстом.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues a single request. The returned error is always a
// *TransportError; backend rejections come back as a Response with OK unset.
func (c *Client) Do(ctx context.Context, method, path string, body any, requiresAuth bool) (*Response, error) {
	token := ""
	if requiresAuth && c.tokens != nil {
		token = c.tokens.Token()
	}
	return c.do(ctx, method, path, body, token)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string) (*Response, error) {
	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && len(bytes.TrimSpace(respBody)) > 0 && !json.Valid(respBody) {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("malformed JSON in response")}
	}

	return &Response{
		Status: resp.StatusCode,
		OK:     ok,
		Data:   respBody,
	}, nil
}

// send builds and executes the request; the caller owns the response body.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	// токен в лог не попадает
	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return resp, nil
}

// decode turns a Response into either the typed result or a *StatusError.
func decode(resp *Response, method, path string, result any) error {
	if !resp.OK {
		return &StatusError{StatusCode: resp.Status, Message: resp.ErrorMessage()}
	}
	if result == nil {
		return nil
	}
	if err := resp.Decode(result); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, requiresAuth bool, result any) error {
	resp, err := c.Do(ctx, method, path, body, requiresAuth)
	if err != nil {
		return err
	}
	return decode(resp, method, path, result)
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.call(ctx, http.MethodPost, "/login", req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.call(ctx, http.MethodPost, "/users", req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me validates token against GET /me. The token is passed explicitly
// because it is checked before any session exists.
func (c *Client) Me(ctx context.Context, token string) (*api.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/me", nil, token)
	if err != nil {
		return nil, err
	}
	var me api.MeResponse
	if err := decode(resp, http.MethodGet, "/me", &me); err != nil {
		return nil, err
	}
	return &me.User, nil
}

// ListUsers возвращает всех пользователей
func (c *Client) ListUsers(ctx context.Context) ([]api.User, error) {
	var resp api.UsersResponse
	if err := c.call(ctx, http.MethodGet, "/users", nil, false, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetUser получает пользователя по id
func (c *Client) GetUser(ctx context.Context, id int64) (*api.User, error) {
	path := fmt.Sprintf("/users/%d", id)
	var resp api.UserResponse
	if err := c.call(ctx, http.MethodGet, path, nil, false, &resp); err != nil {
		return nil, err
	}
	user, err := resp.Single()
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: path, Err: err}
	}
	return user, nil
}

// ListRecipes возвращает все рецепты; требует токен
func (c *Client) ListRecipes(ctx context.Context) ([]api.Recipe, error) {
	var resp api.RecipesResponse
	if err := c.call(ctx, http.MethodGet, "/recipes", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// CreateRecipe создает рецепт от имени текущего пользователя
func (c *Client) CreateRecipe(ctx context.Context, req api.CreateRecipeRequest) (*api.CreateRecipeResponse, error) {
	var resp api.CreateRecipeResponse
	if err := c.call(ctx, http.MethodPost, "/recipes", req, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListStaticFiles возвращает имена файлов, доступных для скачивания
func (c *Client) ListStaticFiles(ctx context.Context) ([]string, error) {
	var resp api.StaticListResponse
	if err := c.call(ctx, http.MethodGet, "/recipes/static/list", nil, false, &resp); err != nil {
		return nil, err
	}
	if resp.Files == nil {
		return []string{}, nil
	}
	return resp.Files, nil
}

// StaticFileURL returns the download address for fileName.
func (c *Client) StaticFileURL(fileName string) string {
	return c.baseURL + staticFilePath(fileName)
}

func staticFilePath(fileName string) string {
	return "/recipes/static?" + url.Values{"file_name": {fileName}}.Encode()
}

// DownloadStaticFile streams the file into w without interpreting it.
func (c *Client) DownloadStaticFile(ctx context.Context, fileName string, w io.Writer) (int64, error) {
	path := staticFilePath(fileName)
	resp, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		r := &Response{Status: resp.StatusCode, Data: body}
		return 0, &StatusError{StatusCode: resp.StatusCode, Message: r.ErrorMessage()}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Method: http.MethodGet, Path: path, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	return n, nil
}
