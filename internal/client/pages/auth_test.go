package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bakeclient/internal/client/apitest"
	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
	"github.com/iudanet/bakeclient/internal/validation"
)

func newAuth(t *testing.T) (*apitest.Server, *Auth, *fakeSession, *view.Document, *fakeNav) {
	t.Helper()
	backend := apitest.New(t)
	sess := &fakeSession{}
	doc := view.NewDocument()
	nav := &fakeNav{}
	auth := NewAuth(newClient(t, backend.URL, sess), sess, doc, nav, testLogger())
	auth.RedirectDelay = 10 * time.Millisecond
	return backend, auth, sess, doc, nav
}

func TestAuth_Login(t *testing.T) {
	backend, auth, sess, doc, nav := newAuth(t)
	alice := backend.AddUser("alice", "alice@example.com", "secret1")

	doc.SetField(view.FormLogin, "username", "alice")
	doc.SetField(view.FormLogin, "password", "secret1")
	auth.Login(context.Background())

	assert.NotEmpty(t, sess.Token())
	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, alice.ID, user.ID)
	assert.Equal(t, []string{string(view.PageRecipes)}, nav.Pages())
	assert.Equal(t, []shownMessage{{Text: "Login successful!", Kind: render.KindSuccess}}, nav.Messages())
	assert.Empty(t, doc.Section(view.SectionLoginMessage))
}

func TestAuth_Login_Failure(t *testing.T) {
	backend, auth, sess, doc, nav := newAuth(t)
	backend.AddUser("alice", "alice@example.com", "secret1")

	doc.SetField(view.FormLogin, "username", "alice")
	doc.SetField(view.FormLogin, "password", "nope")
	auth.Login(context.Background())

	assert.Empty(t, sess.Token())
	assert.Empty(t, nav.Pages())
	assert.Equal(t, render.Message(render.KindError, "Invalid username or password"), doc.Section(view.SectionLoginMessage))

	for name, body := range map[string]string{
		"null user":    `{"access_token":"T","token_type":"bearer","user":null}`,
		"missing user": `{"access_token":"T","token_type":"bearer"}`,
		"empty user":   `{"access_token":"T","token_type":"bearer","user":{}}`,
		"no token":     `{"user":{"id":1,"username":"alice"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(srv.Close)

			sess := &fakeSession{}
			doc := view.NewDocument()
			nav := &fakeNav{}
			auth := NewAuth(newClient(t, srv.URL, sess), sess, doc, nav, testLogger())

			doc.SetField(view.FormLogin, "username", "alice")
			doc.SetField(view.FormLogin, "password", "secret1")
			auth.Login(context.Background())

			assert.Empty(t, sess.Token())
			_, ok := sess.User()
			assert.False(t, ok)
			assert.Empty(t, nav.Pages())
			assert.Equal(t, render.Message(render.KindError, "Login failed"), doc.Section(view.SectionLoginMessage))
		})
	}
}

func TestAuth_Login_SessionError(t *testing.T) {
	backend, auth, sess, doc, nav := newAuth(t)
	backend.AddUser("alice", "alice@example.com", "secret1")
	sess.err = errors.New("disk full")

	doc.SetField(view.FormLogin, "username", "alice")
	doc.SetField(view.FormLogin, "password", "secret1")
	auth.Login(context.Background())

	assert.Empty(t, nav.Pages())
	assert.Contains(t, doc.Section(view.SectionLoginMessage), "disk full")
}

func TestAuth_Register_Invalid(t *testing.T) {
	backend, auth, _, doc, nav := newAuth(t)

	doc.SetField(view.FormRegister, "username", "ab")
	doc.SetField(view.FormRegister, "email", "not-an-email")
	doc.SetField(view.FormRegister, "password", "123")
	auth.Register(context.Background())

	want := render.Message(render.KindError,
		validation.ErrUsernameFormat.Error(),
		validation.ErrEmailFormat.Error(),
		validation.ErrPasswordLength.Error(),
	)
	assert.Equal(t, want, doc.Section(view.SectionRegisterMessage))
	assert.Zero(t, backend.Count(http.MethodPost, "/users"), "nothing sent while invalid")
	assert.Empty(t, nav.Pages())
}

func TestAuth_Register(t *testing.T) {
	backend, auth, _, doc, nav := newAuth(t)

	doc.SetField(view.FormRegister, "username", "carol")
	doc.SetField(view.FormRegister, "email", "carol@example.com")
	doc.SetField(view.FormRegister, "password", "secret3")
	auth.Register(context.Background())

	assert.Equal(t,
		render.Message(render.KindSuccess, "Registration successful! Welcome carol"),
		doc.Section(view.SectionRegisterMessage))
	assert.Empty(t, doc.Field(view.FormRegister, "username"))
	assert.Equal(t, 1, backend.Count(http.MethodPost, "/users"))

	assert.Eventually(t, func() bool {
		pages := nav.Pages()
		return len(pages) == 1 && pages[0] == string(view.PageLogin)
	}, time.Second, 5*time.Millisecond)
}

func TestAuth_Register_Conflict(t *testing.T) {
	backend, auth, _, doc, nav := newAuth(t)
	backend.AddUser("carol", "carol@example.com", "secret3")

	doc.SetField(view.FormRegister, "username", "carol")
	doc.SetField(view.FormRegister, "email", "carol@example.com")
	doc.SetField(view.FormRegister, "password", "secret3")
	auth.Register(context.Background())

	assert.Equal(t, render.Message(render.KindError, "Username already exists"), doc.Section(view.SectionRegisterMessage))
	assert.Equal(t, "carol", doc.Field(view.FormRegister, "username"))

	time.Sleep(3 * auth.RedirectDelay)
	assert.Empty(t, nav.Pages(), "no redirect after a failed registration")
}

func TestAuth_FieldInput(t *testing.T) {
	_, auth, _, doc, _ := newAuth(t)

	cleaned := auth.FieldInput(validation.FieldUsername, "al<i>ce")
	assert.Equal(t, "alice", cleaned)
	assert.Equal(t, "alice", doc.Field(view.FormRegister, "username"))
	assert.Equal(t, render.Message(render.KindError, validation.IllegalCharacterNotice), doc.Section(view.SectionRegisterMessage))

	auth.FieldInput(validation.FieldUsername, "alice")
	assert.Empty(t, doc.Section(view.SectionRegisterMessage))

	auth.FieldInput(validation.FieldPassword, "123")
	assert.Equal(t, render.Message(render.KindError, validation.ErrPasswordLength.Error()), doc.Section(view.SectionRegisterMessage))
}

func TestAuth_FieldInput_KeepsSuccess(t *testing.T) {
	_, auth, _, doc, _ := newAuth(t)
	success := render.Message(render.KindSuccess, "Registration successful! Welcome carol")
	doc.SetSection(view.SectionRegisterMessage, success)

	auth.FieldInput(validation.FieldEmail, "dave@example.com")

	assert.Equal(t, success, doc.Section(view.SectionRegisterMessage))
}

func TestAuth_Reset(t *testing.T) {
	_, auth, _, doc, _ := newAuth(t)
	doc.SetField(view.FormLogin, "username", "alice")
	doc.SetSection(view.SectionLoginMessage, "old")
	doc.SetField(view.FormRegister, "email", "x@y.z")
	doc.SetSection(view.SectionRegisterMessage, "old")

	auth.ResetLogin(context.Background())
	auth.ResetRegister(context.Background())

	assert.Empty(t, doc.Field(view.FormLogin, "username"))
	assert.Empty(t, doc.Section(view.SectionLoginMessage))
	assert.Empty(t, doc.Field(view.FormRegister, "email"))
	assert.Empty(t, doc.Section(view.SectionRegisterMessage))
}
