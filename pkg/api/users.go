package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyUser is returned when /users/{id} answers with an empty list.
var ErrEmptyUser = errors.New("user list is empty")

// User представляет пользователя сервиса рецептов
type User struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"` // формат задаёт бэкенд
	ID        int64  `json:"id"`
}

// IsZero reports whether u carries neither an id nor a username, as when
// the backend answers with a null or empty user object.
func (u User) IsZero() bool {
	return u.ID == 0 && u.Username == ""
}

// UnmarshalJSON accepts both "id" and "user_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		UserID *int64 `json:"user_id"`
		plain
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == 0 && aux.UserID != nil {
		u.ID = *aux.UserID
	}
	return nil
}

// UsersResponse is returned by GET /users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// UserResponse is returned by GET /users/{id}. The backend sends the user
// either as an object or as a one-element list, so the raw value is kept
// and normalized by Single.
type UserResponse struct {
	User json.RawMessage `json:"user"`
}

// Single returns the user regardless of the shape the backend chose.
func (r *UserResponse) Single() (*User, error) {
	raw := bytes.TrimSpace(r.User)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrEmptyUser
	}

	if raw[0] == '[' {
		var users []User
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("failed to decode user list: %w", err)
		}
		if len(users) == 0 {
			return nil, ErrEmptyUser
		}
		return &users[0], nil
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}
