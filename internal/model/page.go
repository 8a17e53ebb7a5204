package model

import (
	"regexp"
	"strings"
	"unicode"
)

// Slugs are lowercase words of any script joined by single dashes
var slugPattern = regexp.MustCompile(`^[\p{Ll}\p{Lm}\p{Lo}\p{M}\p{Nd}]+(?:-[\p{Ll}\p{Lm}\p{Lo}\p{M}\p{Nd}]+)*$`)

// Page is a static informational page addressed by slug
type Page struct {
	ID      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Slug    string `json:"slug" yaml:"slug"`
	Date    Date   `json:"date" yaml:"date"`
	Content string `json:"content" yaml:"content"`
}

func (p Page) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("page title is required")
	}
	if p.Slug == "" {
		return invalid("page slug is required; enter one when the title has no letters or digits to derive it from")
	}
	if !slugPattern.MatchString(p.Slug) {
		return invalid("page slug must be lowercase letters, digits and dashes")
	}
	return nil
}

// Slugify derives a slug from a title
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case unicode.IsMark(r) && b.Len() > 0 && !dash:
			b.WriteRune(r)
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
