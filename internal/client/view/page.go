package view

// Page is one of the client's screens. Exactly one is active at a time.
type Page string

const (
	PageHome          Page = "home"
	PageRecipes       Page = "recipes"
	PageUsers         Page = "users"
	PageProfile       Page = "profile"
	PageStaticRecipes Page = "static-recipes"
	PageLogin         Page = "login"
	PageRegister      Page = "register"
)

// Pages lists every page in navigation order.
var Pages = []Page{
	PageHome,
	PageRecipes,
	PageUsers,
	PageProfile,
	PageStaticRecipes,
	PageLogin,
	PageRegister,
}

// Section ids.
const (
	SectionRecipesList     = "recipes-list"
	SectionUsersList       = "users-list"
	SectionProfile         = "profile-content"
	SectionStaticStatus    = "static-recipes-status"
	SectionStaticList      = "static-recipes-list"
	SectionLoginMessage    = "login-message"
	SectionRegisterMessage = "register-message"
)

// Form ids.
const (
	FormLogin        = "login-form"
	FormRegister     = "register-form"
	FormNewRecipe    = "new-recipe-form"
	FormStaticSearch = "static-search"
)

var pageSections = map[Page][]string{
	PageRecipes:       {SectionRecipesList},
	PageUsers:         {SectionUsersList},
	PageProfile:       {SectionProfile},
	PageStaticRecipes: {SectionStaticStatus, SectionStaticList},
	PageLogin:         {SectionLoginMessage},
	PageRegister:      {SectionRegisterMessage},
}

var pageTitles = map[Page]string{
	PageHome:          "Home",
	PageRecipes:       "Recipes",
	PageUsers:         "Users",
	PageProfile:       "Profile",
	PageStaticRecipes: "Static Recipes",
	PageLogin:         "Login",
	PageRegister:      "Register",
}

// ParsePage maps a page name to a Page.
func ParsePage(name string) (Page, bool) {
	p := Page(name)
	_, ok := pageTitles[p]
	return p, ok
}

// Title is the human readable page name.
func (p Page) Title() string {
	return pageTitles[p]
}

// Sections lists the section ids rendered on p, in display order.
func (p Page) Sections() []string {
	return pageSections[p]
}
