package common

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a URL slug from an entity title and its id. The id is always
// the trailing segment so the slug stays unique and the entity can be resolved
// from it even after the title changes.
func Slugify(title, entityID string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return entityID
	}

	return s + "-" + entityID
}
