package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/username/ward-program/pkg/dateutil"
)

// NowLayout is how the "last updated" stamp is printed
const NowLayout = "2006-01-02 15:04:05"

// ordinal returns the number with its English suffix: 1st, 22nd, 13th
// helper function for html template
func ordinal(n int) string {
	return fmt.Sprintf("%d%s", n, dateutil.OrdinalSuffix(n))
}

// fallback returns value unless it is empty, otherwise def
// helper function for html template
func fallback(def, value any) any {
	if value == nil {
		return def
	}
	if s, ok := value.(string); ok && s == "" {
		return def
	}
	return value
}

// list builds a slice from its arguments
// helper function for html template
func list(items ...any) []any {
	return items
}

// longdate reformats an ISO date as "02 January 2006", leaving
// anything it cannot parse untouched
// helper function for html template
func longdate(s string) string {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return s
	}
	return dateutil.FormatLong(d)
}

// safeURL marks a lookup URL as trusted so data: and relative links survive escaping
// helper function for html template
func safeURL(s string) template.URL {
	return template.URL(s)
}

// title upper-cases the first letter
// helper function for html template
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"now": func() string {
			return r.now().In(r.loc).Format(NowLayout)
		},
		"ordinal":  ordinal,
		"longdate": longdate,
		"safeURL":  safeURL,
		"default":  fallback,
		"list":     list,
		"title":    title,
		"lower":    strings.ToLower,
	}
}
