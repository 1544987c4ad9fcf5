package cli

import (
	"strings"

	"github.com/iudanet/bakeclient/internal/client/view"
	"github.com/iudanet/bakeclient/internal/render"
)

var messageMarks = map[render.Kind]string{
	render.KindPlain:   "-",
	render.KindInfo:    "i",
	render.KindSuccess: "✓",
	render.KindError:   "✗",
}

// header renders the session-dependent controls as one line.
func header(a view.Affordances) string {
	var parts []string
	if a.ShowUserSection {
		parts = append(parts, a.Greeting)
	}
	if a.ShowAuthPrompt {
		parts = append(parts, "[login] [register]")
	}
	if a.ShowCreateRecipe {
		parts = append(parts, "[new-recipe]")
	}
	if a.ShowProfileLink {
		parts = append(parts, "[profile]")
	}
	if a.ShowUserSection {
		parts = append(parts, "[logout]")
	}
	return strings.Join(parts, " ")
}

// printScreen draws the active page from a single snapshot.
func (c *Cli) printScreen() {
	snap := c.app.Doc.Snapshot()

	c.io.Println(header(snap.Affordances))
	c.io.Printf("=== %s ===\n", snap.Active.Title())

	if snap.Active == view.PageHome {
		c.io.Println(homeText)
	}

	for _, id := range snap.Active.Sections() {
		if text := render.Text(snap.Sections[id]); text != "" {
			c.io.Println(text)
		}
	}

	if snap.CreateFormOpen && snap.Active == view.PageRecipes {
		c.io.Println("(new recipe form open)")
	}

	for _, m := range snap.Messages {
		c.io.Printf("%s %s\n", messageMarks[m.Kind], m.Text)
	}
	c.io.Println()
}
