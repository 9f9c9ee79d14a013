package search

import "strings"

// Request is the backend query: sort, a body with the filter or search
// clause, and an optional page window.
type Request struct {
	Sort []string
	Body *Body
	From *int
	Size *int
}

// Body carries the clause plus the defaults a resolved filter brings along.
// Request-level Sort and Size take precedence over Body.Sort and Body.Limit.
type Body struct {
	Query  Clause
	Sort   []string
	Source []string
	Limit  int
}

func (r *Request) Query() Clause {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Query
}

func (r *Request) SortFields() []string {
	if r == nil {
		return nil
	}
	if len(r.Sort) > 0 {
		return r.Sort
	}
	if r.Body != nil {
		return r.Body.Sort
	}
	return nil
}

func (r *Request) SourceFields() []string {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Source
}

// Window returns the offset and result count. A zero size means the
// backend default applies.
func (r *Request) Window() (from, size int) {
	if r == nil {
		return 0, 0
	}
	if r.From != nil {
		from = *r.From
	}
	switch {
	case r.Size != nil:
		size = *r.Size
	case r.Body != nil:
		size = r.Body.Limit
	}
	return from, size
}

// ParseSort splits a backend sort string ("field" or "field:desc").
func ParseSort(s string) (field string, desc bool) {
	if f, ok := strings.CutSuffix(s, ":desc"); ok {
		return f, true
	}
	return strings.TrimSuffix(s, ":asc"), false
}
