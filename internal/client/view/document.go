// Package view holds the client's document: which page is visible, the
// rendered HTML of every section, form field values, transient messages
// and the header affordances. It is the terminal client's stand-in for a
// browser DOM and is safe for use from timer goroutines.
package view

import (
	"maps"
	"slices"
	"sync"

	"github.com/iudanet/bakeclient/internal/render"
)

// Message is a transient notice attached to a page.
type Message struct {
	ID   string
	Text string
	Kind render.Kind
}

// Affordances describes the header controls that depend on the session.
type Affordances struct {
	Greeting         string
	ShowAuthPrompt   bool
	ShowUserSection  bool
	ShowCreateRecipe bool
	ShowProfileLink  bool
}

// Snapshot is a consistent copy of the document.
type Snapshot struct {
	Sections       map[string]string
	Active         Page
	Messages       []Message
	Affordances    Affordances
	CreateFormOpen bool
}

// Document is the mutable view state.
type Document struct {
	sections       map[string]string
	forms          map[string]map[string]string
	messages       map[Page][]Message
	active         Page
	affordances    Affordances
	createFormOpen bool
	mu             sync.RWMutex
}

// NewDocument returns a document showing the home page to an anonymous user.
func NewDocument() *Document {
	return &Document{
		sections:    make(map[string]string),
		forms:       make(map[string]map[string]string),
		messages:    make(map[Page][]Message),
		active:      PageHome,
		affordances: Affordances{ShowAuthPrompt: true},
	}
}

// Activate makes p the only visible page.
func (d *Document) Activate(p Page) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = p
}

// Active returns the visible page.
func (d *Document) Active() Page {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

// SetSection replaces the HTML of a section.
func (d *Document) SetSection(id, html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sections[id] = html
}

// Section returns the HTML of a section.
func (d *Document) Section(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sections[id]
}

// ClearSection empties a section.
func (d *Document) ClearSection(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sections, id)
}

// SetField stores a form input value.
func (d *Document) SetField(form, field, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.forms[form] == nil {
		d.forms[form] = make(map[string]string)
	}
	d.forms[form][field] = value
}

// Field returns a form input value.
func (d *Document) Field(form, field string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.forms[form][field]
}

// ResetForm clears every input of a form.
func (d *Document) ResetForm(form string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.forms, form)
}

// AppendMessage adds m to page p.
func (d *Document) AppendMessage(p Page, m Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages[p] = append(d.messages[p], m)
}

// RemoveMessage drops the message with the given id from p.
func (d *Document) RemoveMessage(p Page, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	msgs := d.messages[p]
	for i, m := range msgs {
		if m.ID == id {
			d.messages[p] = slices.Delete(msgs, i, i+1)
			return true
		}
	}
	return false
}

// Messages returns the messages currently attached to p.
func (d *Document) Messages(p Page) []Message {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.messages[p])
}

// SetAffordances replaces the header state.
func (d *Document) SetAffordances(a Affordances) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.affordances = a
}

// Affordances returns the header state.
func (d *Document) Affordances() Affordances {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.affordances
}

// SetCreateFormOpen shows or hides the create-recipe form.
func (d *Document) SetCreateFormOpen(open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.createFormOpen = open
}

// CreateFormOpen reports whether the create-recipe form is visible.
func (d *Document) CreateFormOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.createFormOpen
}

// Snapshot copies the state needed to draw the active page.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		Active:         d.active,
		Sections:       maps.Clone(d.sections),
		Messages:       slices.Clone(d.messages[d.active]),
		Affordances:    d.affordances,
		CreateFormOpen: d.createFormOpen,
	}
}
