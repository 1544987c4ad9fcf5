package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		username string
	}{
		{name: "valid username - lowercase", username: "alice"},
		{name: "valid username - mixed case", username: "AliceSmith"},
		{name: "valid username - with underscore", username: "alice_smith"},
		{name: "valid username - with dash", username: "alice-smith"},
		{name: "valid username - all numbers", username: "123456"},
		{name: "valid username - min length", username: "abc"},
		{name: "valid username - max length", username: strings.Repeat("a", 30)},
		{name: "invalid - empty username", username: "", wantErr: ErrUsernameRequired},
		{name: "invalid - angle brackets", username: "<b>bob</b>", wantErr: ErrUsernameChars},
		{name: "invalid - only gt", username: "bob>", wantErr: ErrUsernameChars},
		{name: "invalid - too short (2 chars)", username: "ab", wantErr: ErrUsernameFormat},
		{name: "invalid - too long (31 chars)", username: strings.Repeat("a", 31), wantErr: ErrUsernameFormat},
		{name: "invalid - with dot", username: "alice.smith", wantErr: ErrUsernameFormat},
		{name: "invalid - with space", username: "alice smith", wantErr: ErrUsernameFormat},
		{name: "invalid - cyrillic characters", username: "алиса", wantErr: ErrUsernameFormat},
		{name: "invalid - script keyword", username: "myscript", wantErr: ErrUsernameScript},
		{name: "invalid - script keyword any case", username: "ScRiPt_kid", wantErr: ErrUsernameScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername_PatternProperty(t *testing.T) {
	alphabet := "abcXYZ019_-"
	for n := 3; n <= 30; n++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(alphabet[(i*7+n)%len(alphabet)])
		}
		assert.NoError(t, ValidateUsername(b.String()), b.String())
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		email   string
	}{
		{name: "valid", email: "alice@example.com"},
		{name: "valid subdomain", email: "a.b@mail.example.org"},
		{name: "empty", email: "", wantErr: ErrEmailRequired},
		{name: "angle brackets", email: "<a@b.c>", wantErr: ErrEmailChars},
		{name: "no at", email: "alice.example.com", wantErr: ErrEmailFormat},
		{name: "no dot after at", email: "alice@example", wantErr: ErrEmailFormat},
		{name: "two ats", email: "a@b@c.com", wantErr: ErrEmailFormat},
		{name: "whitespace", email: "al ice@example.com", wantErr: ErrEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword(""), ErrPasswordRequired)
	assert.ErrorIs(t, ValidatePassword("abc12"), ErrPasswordLength)
	assert.ErrorIs(t, ValidatePassword("abc<def>"), ErrPasswordChars)
	assert.NoError(t, ValidatePassword("abcdef"))
	assert.NoError(t, ValidatePassword("пароль"))
}

func TestDetectInjection(t *testing.T) {
	for _, text := range []string{
		"<img src=x onerror=alert(1)>",
		"body ONLOAD =x",
		"<ScRiPt>",
		"JavaScript:alert(1)",
		"data:text/html;base64,xx",
	} {
		assert.ErrorIs(t, DetectInjection(text), ErrInjection, text)
	}
	assert.NoError(t, DetectInjection("alice alice@example.com"))
}

func TestValidateRegistration(t *testing.T) {
	require.NoError(t, ValidateRegistration("alice", "alice@example.com", "secret1"))

	err := ValidateRegistration("ab", "not-an-email", "123")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		ErrUsernameFormat.Error(),
		ErrEmailFormat.Error(),
		ErrPasswordLength.Error(),
	}, vErr.Problems)

	// эвристика применяется к username + email
	err = ValidateRegistration("alice", "javascript:x@evil.com", "secret1")
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Problems, ErrInjection.Error())
}
