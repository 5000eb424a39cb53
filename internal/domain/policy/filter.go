package policy

import (
	"strings"

	"github.com/google/uuid"
)

// Filter narrows a policy listing. Zero values match everything.
type Filter struct {
	CategoryID uuid.UUID
	Search     string
}

func (f Filter) IsZero() bool {
	return f.CategoryID == uuid.Nil && strings.TrimSpace(f.Search) == ""
}

// Accepts reports whether p passes the category and free-text conditions.
// Search is a case-insensitive substring test over title, summary and
// description.
func (f Filter) Accepts(p Policy) bool {
	if f.CategoryID != uuid.Nil && p.CategoryID != f.CategoryID {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Summary), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
