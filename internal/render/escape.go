// Package render turns users, recipes and file names into HTML fragments.
// Every piece of user-supplied or backend-sourced text goes through
// EscapeHTML; the templates below have no other interpolation path.
package render

import (
	"strings"
	"time"
)

// ExcerptLength is the number of characters kept from recipe content.
const ExcerptLength = 100

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var htmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
)

// EscapeHTML replaces &, <, >, " and ' with their entities.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// UnescapeHTML reverses EscapeHTML.
func UnescapeHTML(text string) string {
	return htmlUnescaper.Replace(text)
}

// Excerpt cuts the raw content to ExcerptLength characters, escapes the
// result and appends an ellipsis.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return EscapeHTML(string(runes)) + "..."
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date formats a backend timestamp as a date; unparseable values are
// shown as they came.
func Date(value string) string {
	if t, ok := parseDate(value); ok {
		return t.Format("2006-01-02")
	}
	return value
}

// DateTime is Date with the time of day.
func DateTime(value string) string {
	if t, ok := parseDate(value); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return value
}
