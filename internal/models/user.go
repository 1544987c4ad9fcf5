package models

import "github.com/iudanet/bakeclient/pkg/api"

// Session представляет текущего авторизованного пользователя и его токен.
// Token is non-empty exactly when User is set.
type Session struct {
	Token string
	User  api.User
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
