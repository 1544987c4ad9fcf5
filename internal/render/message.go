package render

import "strings"

// Kind is the visual class of a message.
type Kind string

const (
	KindPlain   Kind = ""
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message renders one message box. Lines are escaped individually and
// joined with <br>.
func Message(kind Kind, lines ...string) string {
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = EscapeHTML(line)
	}

	class := "message"
	if kind != KindPlain {
		class += " " + string(kind)
	}
	return `<div class="` + class + `">` + strings.Join(escaped, "<br>") + `</div>`
}
