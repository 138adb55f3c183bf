package common

import (
	"regexp"
	"strings"
)

var (
	imageMarkup   = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkMarkup    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	listMarkup    = regexp.MustCompile(`(?m)^\s*(?:[-+*]|\d+\.)\s+`)
	headingMarkup = regexp.MustCompile(`(?m)^\s*#+\s*`)
	quoteMarkup   = regexp.MustCompile(`(?m)^\s*>\s*`)
	inlineMarkup  = regexp.MustCompile("[*_~`]+")
	whitespace    = regexp.MustCompile(`\s+`)
)

const Ellipsis = "…"

// Preview turns a markdown body into a plain-text excerpt of at most budget
// characters. Markup is stripped, whitespace collapsed, and the result gets an
// ellipsis marker if it was truncated.
func Preview(body string, budget int) string {
	s := imageMarkup.ReplaceAllString(body, "$1")
	s = linkMarkup.ReplaceAllString(s, "$1")
	s = listMarkup.ReplaceAllString(s, "")
	s = headingMarkup.ReplaceAllString(s, "")
	s = quoteMarkup.ReplaceAllString(s, "")
	s = inlineMarkup.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))

	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}

	return strings.TrimRight(string(runes[:budget]), " ") + Ellipsis
}
