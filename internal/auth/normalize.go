package auth

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"pushauth/internal/validation"
)

var namePolicy = bluemonday.StrictPolicy()

// storedName strips markup from an already validated display name. Names
// without a closing bracket cannot hold a tag and are kept as submitted, so
// "a<b" survives intact. Entities are turned back into plain text since
// names are never rendered as HTML by this service.
func storedName(name string) string {
	name = strings.TrimSpace(name)
	if !strings.Contains(name, "<") || !strings.Contains(name, ">") {
		return name
	}
	return strings.TrimSpace(html.UnescapeString(namePolicy.Sanitize(name)))
}

func trimField(f validation.Field) validation.Field {
	if f.IsString {
		f.Value = strings.TrimSpace(f.Value)
	}
	return f
}
