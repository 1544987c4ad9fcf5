package validation

import "strings"

// Field names a guarded registration input.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// IllegalCharacterNotice is shown when a keystroke introduced < or >.
const IllegalCharacterNotice = "Illegal character removed: < or > not allowed."

// SanitizeField strips < and > from value and re-validates it.
// The returned message is the stripping notice when anything was removed,
// otherwise the field's validation error, otherwise "".
func SanitizeField(field Field, value string) (string, string) {
	cleaned := angleBrackets.ReplaceAllString(value, "")
	if cleaned != value {
		return cleaned, IllegalCharacterNotice
	}

	var err error
	switch field {
	case FieldUsername:
		err = ValidateUsername(strings.TrimSpace(cleaned))
	case FieldEmail:
		err = ValidateEmail(strings.TrimSpace(cleaned))
	case FieldPassword:
		err = ValidatePassword(cleaned)
	}
	if err != nil {
		return cleaned, err.Error()
	}
	return cleaned, ""
}
