package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ с токеном доступа и данными пользователя
type LoginResponse struct {
	AccessToken string `json:"access_token"`         // JWT access token
	TokenType   string `json:"token_type,omitempty"` // обычно "bearer"
	User        User   `json:"user"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Message string `json:"message"`
}

// MeResponse is returned by GET /me. The backend echoes the token payload,
// so the user id arrives as user_id rather than id.
type MeResponse struct {
	User User `json:"user"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
