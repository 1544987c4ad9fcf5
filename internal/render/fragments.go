package render

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/iudanet/bakeclient/pkg/api"
)

var funcs = template.FuncMap{
	"esc":      EscapeHTML,
	"excerpt":  Excerpt,
	"date":     Date,
	"datetime": DateTime,
	"id":       func(id int64) string { return EscapeHTML(formatID(id)) },
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

const usersTemplate = `
{{- range . }}
<div class="user-card">
  <h3 class="user-username">{{ esc .Username }}</h3>
  <p class="user-email">{{ esc .Email }}</p>
  <small>Member since: {{ esc (date .CreatedAt) }}</small>
</div>
{{- end }}`

const recipesTemplate = `
{{- range . }}
<div class="recipe-card">
  <div class="recipe-content">
    <h3 class="recipe-title">{{ esc .Title }}</h3>
    <p class="recipe-author">By {{ esc .Author }}</p>
    <p class="recipe-excerpt">{{ excerpt .Content }}</p>
    <small>Created: {{ esc (date .CreatedAt) }}</small>
  </div>
</div>
{{- end }}`

const profileTemplate = `
<div class="profile-card">
  <h3>{{ esc .Username }}</h3>
  <p>Email: {{ esc .Email }}</p>
  <p>User ID: {{ id .ID }}</p>
  <p>Member since: {{ esc (datetime .CreatedAt) }}</p>
</div>`

const staticFilesTemplate = `
{{- range . }}
<li class="static-recipe-item">📄 {{ esc .Name }} <a href="{{ esc .URL }}" class="btn-link" download target="_blank">Download</a></li>
{{- end }}`

var (
	usersTmpl       = template.Must(template.New("users").Funcs(funcs).Parse(usersTemplate))
	recipesTmpl     = template.Must(template.New("recipes").Funcs(funcs).Parse(recipesTemplate))
	profileTmpl     = template.Must(template.New("profile").Funcs(funcs).Parse(profileTemplate))
	staticFilesTmpl = template.Must(template.New("static").Funcs(funcs).Parse(staticFilesTemplate))
)

// StaticFile is a file name paired with its download address.
type StaticFile struct {
	Name string
	URL  string
}

func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// шаблоны фиксированы, ошибка означает баг
		return Message(KindError, "Render error: "+err.Error())
	}
	return b.String()
}

// Users renders the user list.
func Users(users []api.User) string {
	if len(users) == 0 {
		return Message(KindPlain, "No users found")
	}
	return execute(usersTmpl, users)
}

// Recipes renders recipe cards with content excerpts.
func Recipes(recipes []api.Recipe) string {
	if len(recipes) == 0 {
		return Message(KindPlain, "No recipes found")
	}
	return execute(recipesTmpl, recipes)
}

// Profile renders a single user's profile card.
func Profile(user api.User) string {
	return execute(profileTmpl, user)
}

// StaticFiles renders the downloadable file list.
func StaticFiles(files []StaticFile) string {
	if len(files) == 0 {
		return `<li class="message">No matching static recipes found.</li>`
	}
	return execute(staticFilesTmpl, files)
}
