// Package validation holds the advisory input checks run before a form is
// submitted. They improve feedback only; the backend remains the authority
// and rendered output is protected by escaping, not by these checks.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// UsernamePattern определяет допустимый формат username
// Латинские буквы, цифры, "_" и "-", длина 3-30 символов
var UsernamePattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{3,30}$`)

// EmailPattern is a deliberately loose localpart@domain.tld shape check.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	angleBrackets    = regexp.MustCompile(`[<>]`)
	scriptKeyword    = regexp.MustCompile(`(?i)script`)
	injectionPattern = regexp.MustCompile(`(?i)(onerror\s*=|onload\s*=|<script|javascript:|data:)`)
)

// MinPasswordLen минимальная длина пароля
const MinPasswordLen = 6

// Тексты ошибок показываются пользователю как есть, поэтому с заглавной буквы.
var (
	ErrUsernameRequired = errors.New("Username required")
	ErrUsernameChars    = errors.New("Username contains invalid characters")
	ErrUsernameFormat   = errors.New("Username must be 3-30 chars (letters, numbers, _ or -)")
	ErrUsernameScript   = errors.New("Username cannot contain script keyword")

	ErrEmailRequired = errors.New("Email required")
	ErrEmailChars    = errors.New("Email contains invalid characters")
	ErrEmailFormat   = errors.New("Invalid email format")

	ErrPasswordRequired = errors.New("Password required")
	ErrPasswordChars    = errors.New("Password contains invalid characters")
	ErrPasswordLength   = errors.New("Password must be at least 6 characters")

	ErrInjection = errors.New("Potential XSS pattern detected in input")
)

// ValidateUsername проверяет, что username соответствует требованиям
func ValidateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if angleBrackets.MatchString(username) {
		return ErrUsernameChars
	}
	if !UsernamePattern.MatchString(username) {
		return ErrUsernameFormat
	}
	if scriptKeyword.MatchString(username) {
		return ErrUsernameScript
	}
	return nil
}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if angleBrackets.MatchString(email) {
		return ErrEmailChars
	}
	if !EmailPattern.MatchString(email) {
		return ErrEmailFormat
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if angleBrackets.MatchString(password) {
		return ErrPasswordChars
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return ErrPasswordLength
	}
	return nil
}

// DetectInjection flags text containing common script-injection markers.
func DetectInjection(text string) error {
	if injectionPattern.MatchString(text) {
		return ErrInjection
	}
	return nil
}

// ValidationError lists every rule a form violated.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// ValidateRegistration runs all registration checks and reports every
// violation at once. Username and email are expected to be trimmed.
func ValidateRegistration(username, email, password string) error {
	var problems []string
	for _, err := range []error{
		ValidateUsername(username),
		ValidateEmail(email),
		ValidatePassword(password),
		DetectInjection(username + " " + email),
	} {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
