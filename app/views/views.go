// Package views embeds the HTML templates and static assets.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed *.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages lists every page template; each is parsed together with layout.html.
var Pages = []string{
	"login",
	"register",
	"home",
	"posts",
	"post_details",
	"category",
	"create_post",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02/01/2006 15:04")
	},
}

// Load parses every page into its own template set keyed by page name.
func Load() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "layout.html", name+".html")
		if err != nil {
			return nil, err
		}
		templates[name] = t
	}
	return templates, nil
}

// Static returns the embedded static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
