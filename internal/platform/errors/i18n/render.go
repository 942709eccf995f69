// Package i18n renders localized error messages from the "errors" namespace
// of the embedded catalogs.
//
// Messages are text/template strings keyed by error code, with named
// placeholders filled from error metadata (for example {{.Got}} for the rod
// count length error). Every template is compiled once per locale.
package i18n

import (
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/louisbranch/abacus/internal/platform/i18n/catalog"
)

// Namespace is the catalog namespace that holds error messages.
const Namespace = "errors"

// Renderer holds the compiled error templates of every catalog locale.
type Renderer struct {
	base      string
	templates map[string]map[string]*template.Template
	broken    []string
}

// NewRenderer compiles the errors namespace of every locale in bundle.
// Templates that do not parse are recorded in Broken and fall back to the
// base locale at render time.
func NewRenderer(bundle *catalog.Bundle) *Renderer {
	r := &Renderer{
		base:      catalog.BaseLocale,
		templates: map[string]map[string]*template.Template{},
	}
	for _, locale := range bundle.Locales() {
		compiled := map[string]*template.Template{}
		for code, text := range bundle.NamespaceMessages(locale, Namespace) {
			tmpl, err := template.New(code).Option("missingkey=zero").Parse(text)
			if err != nil {
				r.broken = append(r.broken, locale+"/"+code)
				continue
			}
			compiled[code] = tmpl
		}
		r.templates[locale] = compiled
	}
	sort.Strings(r.broken)
	return r
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	return NewRenderer(catalog.Default())
})

// Default returns the renderer over the embedded catalogs.
func Default() *Renderer {
	return defaultRenderer()
}

// Message renders code for locale. Unknown locales and codes missing from a
// locale use the base locale; a code missing everywhere renders as itself.
// Absent metadata keys render empty.
func (r *Renderer) Message(locale, code string, metadata map[string]string) string {
	tmpl, ok := r.lookup(strings.TrimSpace(locale), code)
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return code
	}
	return b.String()
}

// Broken lists "locale/code" entries whose templates failed to parse.
func (r *Renderer) Broken() []string {
	return append([]string(nil), r.broken...)
}

func (r *Renderer) lookup(locale, code string) (*template.Template, bool) {
	if tmpl, ok := r.templates[locale][code]; ok {
		return tmpl, true
	}
	tmpl, ok := r.templates[r.base][code]
	return tmpl, ok
}
