package query

import (
	"strings"
)

// SearchQuery is free text scoped to a set of fields.
type SearchQuery struct {
	Text   string
	Fields []string
}

func NewSearchQuery(text string, fields ...string) SearchQuery {
	return SearchQuery{Text: strings.TrimSpace(text), Fields: fields}
}

func (q SearchQuery) IsZero() bool { return q.Text == "" }

func (q SearchQuery) String() string { return q.Text }

// Pagination is a page number (from 1) and a page size.
type Pagination struct {
	Number int
	Size   int
}

// IsSet reports whether both number and size are present. Partial
// pagination is ignored.
func (p Pagination) IsSet() bool {
	return p.Number > 0 && p.Size > 0
}

// Window converts the page into an offset and a result count.
func (p Pagination) Window() (from, size int, ok bool) {
	if !p.IsSet() {
		return 0, 0, false
	}
	if p.Number > 1 {
		from = (p.Number - 1) * p.Size
	}
	return from, p.Size, true
}

// SortSpec is a field name with an optional leading "-" for descending.
type SortSpec string

// Backend returns the sort string the search backend understands.
// Ascending is the backend default, so no ":asc" is emitted.
func (s SortSpec) Backend() string {
	spec := strings.TrimSpace(string(s))
	if field, ok := strings.CutPrefix(spec, "-"); ok {
		if field == "" {
			return ""
		}
		return field + ":desc"
	}
	return spec
}
