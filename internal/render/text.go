package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blockElements = map[string]bool{
	"div": true, "p": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "small": true,
}

type textWriter struct {
	lines []string
	cur   []string
}

func (w *textWriter) word(s string) {
	if s != "" {
		w.cur = append(w.cur, s)
	}
}

func (w *textWriter) newline() {
	if len(w.cur) > 0 {
		w.lines = append(w.lines, strings.Join(w.cur, " "))
		w.cur = nil
	}
}

func (w *textWriter) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			w.word(strings.Join(strings.Fields(node.Text()), " "))
		case name == "br":
			w.newline()
		case name == "a":
			w.walk(node)
			if href, ok := node.Attr("href"); ok && href != "" {
				w.word("<" + href + ">")
			}
		case blockElements[name]:
			w.newline()
			w.walk(node)
			w.newline()
		default:
			w.walk(node)
		}
	})
}

// Text converts an HTML fragment into terminal lines: tags are dropped,
// entities decoded and block elements put on their own line.
func Text(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	w := &textWriter{}
	w.walk(doc.Find("body"))
	w.newline()
	return strings.Join(w.lines, "\n")
}
