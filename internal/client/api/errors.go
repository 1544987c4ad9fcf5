package api

import "fmt"

// TransportError описывает сбой на уровне сети: сервер недоступен, DNS,
// оборванное соединение или тело ответа, которое не удалось разобрать.
// Error returns the underlying description unchanged so it can be shown
// to the user verbatim.
type TransportError struct {
	Err    error
	Method string
	Path   string
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from the backend. Message holds the
// backend's "error" field and is empty when the body carried none.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}
