package cli

import (
	"text/template"

	"github.com/iudanet/bakeclient/internal/client/iocli"
)

const shellBanner = `Bake client. Type 'help' for commands, 'quit' to leave.
`

const homeText = `Share and discover recipes. Open 'recipes' to browse, 'static' for downloads.`

const usageTemplate = `
Bake Client

Usage:
  bakeclient [OPTIONS] [COMMAND [ARGS]]

Without a command an interactive shell is started.

Options:
  --version              Show version information
  --server URL           Backend URL (env BAKE_SERVER_URL, default: http://localhost:8000)
  --db PATH              Path to local database (env BAKE_DB_PATH, default: bakeclient.db)
  --log-level LEVEL      debug, info, warn or error (env BAKE_LOG_LEVEL, default: warn)

Pages:
  home                   Home page
  recipes                Recipe list (login required)
  users                  User list
  profile                Your profile (login required)
  static                 Downloadable recipe files

Commands:
  login [username]       Log in; the password is always prompted
  register               Create an account
  logout                 End the session
  status                 Show session and token expiry
  new-recipe             Create a recipe
  export <file.xlsx>     Save the recipe list as a spreadsheet
  search <term>          Filter static recipe files
  clear                  Clear the static recipe filter
  download [-dir DIR] <file name>
                         Save a static recipe file
  show                   Redraw the current page
  help                   Show this help
  quit                   Leave the shell

Examples:
  bakeclient --server https://recipes.example.com login alice
  bakeclient recipes
  bakeclient download -dir ~/Downloads "apple pie.txt"
`

const statusTemplate = `
=== Session Status ===

Server: {{ .Server }}
{{- if .Authenticated }}
Status: Authenticated
Username: {{ .Username }}
User ID: {{ .UserID }}
{{- if .HasExpiry }}
Token expires: {{ .ExpiresAt }}
{{- if .Expired }}
⚠️  Token has expired. Please login again.
{{- else }}
Time remaining: {{ .Remaining }}
{{- end }}
{{- else }}
Token expires: unknown
{{- end }}
{{- else }}
Status: Not authenticated

Run 'login' to authenticate.
{{- end }}
`

type statusView struct {
	Server        string
	Username      string
	ExpiresAt     string
	Remaining     string
	UserID        int64
	Authenticated bool
	HasExpiry     bool
	Expired       bool
}

var statusTmpl = template.Must(template.New("status").Parse(statusTemplate + "\n"))

// PrintUsage печатает справку
func PrintUsage(out iocli.IO) {
	out.Printf("%s", usageTemplate)
}
