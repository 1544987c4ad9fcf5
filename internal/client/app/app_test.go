package app

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/bakeclient/internal/client/api"
	"github.com/iudanet/bakeclient/internal/client/apitest"
	"github.com/iudanet/bakeclient/internal/client/session"
	"github.com/iudanet/bakeclient/internal/client/storage/boltdb"
	"github.com/iudanet/bakeclient/internal/client/view"
)

func newTestApp(t *testing.T, backend *apitest.Server, store *session.Store) *App {
	t.Helper()
	client := httpClient.NewClient(backend.URL, store, testLogger())
	a := New(client, store, testLogger())
	a.Auth.RedirectDelay = 10 * time.Millisecond
	return a
}

func messageTexts(doc *view.Document, p view.Page) []string {
	var out []string
	for _, m := range doc.Messages(p) {
		out = append(out, m.Text)
	}
	return out
}

func TestApp_LoginScenario(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.AddUser("alice", "alice@example.com", "secret1")
	backend.AddRecipe("Bread", "Flour", "bob")

	a := newTestApp(t, backend, newTestStore(t))
	require.NoError(t, a.Start(ctx))
	assert.Equal(t, view.PageHome, a.Controller.Active())
	assert.True(t, a.Doc.Affordances().ShowAuthPrompt)

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "login")))
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventLogin, "username", "alice", "password", "secret1")))

	assert.NotEmpty(t, a.Session.Token())
	assert.Equal(t, view.PageRecipes, a.Controller.Active())
	assert.Equal(t, "Hello, alice", a.Doc.Affordances().Greeting)
	assert.Contains(t, messageTexts(a.Doc, view.PageRecipes), "Login successful!")

	req, ok := backend.LastRequest(http.MethodGet, "/recipes")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+a.Session.Token(), req.Authorization)
	assert.Contains(t, a.Doc.Section(view.SectionRecipesList), "Bread")
}

func TestApp_CreateRecipeScenario(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	alice := backend.AddUser("alice", "alice@example.com", "secret1")

	store := newTestStore(t)
	require.NoError(t, store.SetSession(ctx, alice, backend.IssueToken(alice)))
	a := newTestApp(t, backend, store)

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "recipes")))
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventShowCreateForm)))
	assert.True(t, a.Doc.CreateFormOpen())

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventCreateRecipe, "title", "<script>x</script>", "content", "Boil water")))

	assert.False(t, a.Doc.CreateFormOpen())
	assert.Empty(t, a.Doc.Field(view.FormNewRecipe, "title"))
	assert.Contains(t, messageTexts(a.Doc, view.PageRecipes), "Recipe created successfully!")

	html := a.Doc.Section(view.SectionRecipesList)
	assert.NotContains(t, html, "<script>")
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, "<script>x</script>", page.Find(".recipe-title").Text())
}

func TestApp_RestoreRejectedToken(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	alice := backend.AddUser("alice", "alice@example.com", "secret1")

	store := newTestStore(t)
	require.NoError(t, store.SetSession(ctx, alice, backend.IssueToken(alice)))
	backend.SetRejectTokens(true)

	a := newTestApp(t, backend, store)
	require.NoError(t, a.Start(ctx))

	assert.False(t, a.Session.IsAuthenticated())
	assert.Empty(t, a.Session.Token())
	assert.Equal(t, 1, backend.Count(http.MethodGet, "/me"), "no retry")
	assert.True(t, a.Doc.Affordances().ShowAuthPrompt)
	assert.Equal(t, view.PageHome, a.Controller.Active())
}

func TestApp_RestoreAcceptedToken(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	backend.AddUser("bob", "bob@example.com", "secret2")
	alice := backend.AddUser("alice", "alice@example.com", "secret1")
	token := backend.IssueToken(alice)

	// в хранилище только токен, как после перезапуска процесса
	bolt, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })
	require.NoError(t, bolt.SaveToken(ctx, token))

	store := session.New(bolt, testLogger())
	require.False(t, store.IsAuthenticated())
	a := newTestApp(t, backend, store)
	require.NoError(t, a.Start(ctx))

	user, ok := a.Session.User()
	require.True(t, ok)
	assert.Equal(t, alice.ID, user.ID)
	assert.Equal(t, token, a.Session.Token())
	assert.Equal(t, "Hello, alice", a.Doc.Affordances().Greeting)

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "profile")))
	assert.Equal(t, 1, backend.Count(http.MethodGet, "/users/2"))
	assert.Contains(t, a.Doc.Section(view.SectionProfile), "alice@example.com")
}

func TestApp_Logout(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	alice := backend.AddUser("alice", "alice@example.com", "secret1")

	store := newTestStore(t)
	require.NoError(t, store.SetSession(ctx, alice, backend.IssueToken(alice)))
	a := newTestApp(t, backend, store)

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventLogout)))

	assert.False(t, a.Session.IsAuthenticated())
	assert.Equal(t, view.PageHome, a.Controller.Active())
	assert.Equal(t, []string{"Logged out successfully"}, messageTexts(a.Doc, view.PageHome))
}

func TestApp_NavigateUnknownPage(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, apitest.New(t), newTestStore(t))

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "users")))
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "nowhere")))
	assert.Equal(t, view.PageUsers, a.Controller.Active())

	require.NoError(t, a.Dispatch(ctx, NewEvent("unknown-event")))
}

func TestApp_RegisterRedirectsToLogin(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	a := newTestApp(t, backend, newTestStore(t))

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "register")))
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventFieldInput, "field", "username", "value", "ca<rol")))
	assert.Equal(t, "carol", a.Doc.Field(view.FormRegister, "username"))

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventRegister, "email", "carol@example.com", "password", "secret3")))
	assert.Contains(t, a.Doc.Section(view.SectionRegisterMessage), "Registration successful! Welcome carol")

	assert.Eventually(t, func() bool {
		return a.Controller.Active() == view.PageLogin
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, a.Doc.Section(view.SectionLoginMessage))
}

func TestApp_StaticAndExport(t *testing.T) {
	ctx := context.Background()
	backend := apitest.New(t)
	alice := backend.AddUser("alice", "alice@example.com", "secret1")
	backend.AddRecipe("Bread", "Flour", "bob")
	backend.AddFile("apple pie.txt", []byte("apples"))
	backend.AddFile("banana bread.txt", []byte("bananas"))

	store := newTestStore(t)
	require.NoError(t, store.SetSession(ctx, alice, backend.IssueToken(alice)))
	a := newTestApp(t, backend, store)

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "static-recipes")))
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventStaticSearch, "term", "pie")))
	assert.Contains(t, a.Doc.Section(view.SectionStaticList), "apple pie.txt")
	assert.NotContains(t, a.Doc.Section(view.SectionStaticList), "banana")

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventStaticClear)))
	assert.Contains(t, a.Doc.Section(view.SectionStaticList), "banana bread.txt")

	dir := t.TempDir()
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventDownload, "file", "apple pie.txt", "dir", dir)))
	assert.FileExists(t, filepath.Join(dir, "apple pie.txt"))

	out := filepath.Join(dir, "recipes.xlsx")
	require.Error(t, a.Dispatch(ctx, NewEvent(EventExport, "path", out)), "recipes page not visited yet")

	require.NoError(t, a.Dispatch(ctx, NewEvent(EventNavigate, "page", "recipes")))
	require.NoError(t, a.Dispatch(ctx, NewEvent(EventExport, "path", out)))
	assert.FileExists(t, out)
	assert.Contains(t, messageTexts(a.Doc, view.PageRecipes), "Exported recipes to "+out)
}
