package elastic

import (
	"encoding/json"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/search"
)

// EncodeRequest renders a request as a search body. Full-text clauses go
// under bool.must so they score; everything else is a non-scoring filter.
func EncodeRequest(req *search.Request) ([]byte, error) {
	body := map[string]any{}

	if q := req.Query(); q != nil {
		clause, err := encodeClause(q)
		if err != nil {
			return nil, err
		}
		occur := "filter"
		if _, ok := q.(search.QueryString); ok {
			occur = "must"
		}
		body["query"] = map[string]any{
			"bool": map[string]any{occur: []any{clause}},
		}
	}

	if fields := req.SortFields(); len(fields) > 0 {
		sort := make([]any, 0, len(fields))
		for _, s := range fields {
			field, desc := search.ParseSort(s)
			if desc {
				sort = append(sort, map[string]any{field: map[string]string{"order": "desc"}})
				continue
			}
			sort = append(sort, field)
		}
		body["sort"] = sort
	}

	if fields := req.SourceFields(); len(fields) > 0 {
		body["_source"] = fields
	}

	from, size := req.Window()
	if req != nil && req.From != nil {
		body["from"] = from
	}
	if size > 0 {
		body["size"] = size
	}

	return json.Marshal(body)
}

func encodeClause(c search.Clause) (map[string]any, error) {
	switch c := c.(type) {
	case search.Term:
		return map[string]any{"term": map[string]any{c.Field: c.Value}}, nil

	case search.Terms:
		values := c.Values
		if values == nil {
			values = []string{}
		}
		return map[string]any{"terms": map[string]any{c.Field: values}}, nil

	case search.Nested:
		inner, err := encodeClause(c.Query)
		if err != nil {
			return nil, err
		}
		return map[string]any{"nested": map[string]any{"path": c.Path, "query": inner}}, nil

	case search.MatchPhrase:
		return map[string]any{"match_phrase": map[string]any{c.Field: c.Text}}, nil

	case search.QueryString:
		qs := map[string]any{"query": c.Query}
		if len(c.Fields) > 0 {
			qs["fields"] = c.Fields
		}
		return map[string]any{"query_string": qs}, nil

	case search.AnyOf:
		should := make([]any, 0, len(c))
		for _, sub := range c {
			enc, err := encodeClause(sub)
			if err != nil {
				return nil, err
			}
			should = append(should, enc)
		}
		return map[string]any{"bool": map[string]any{"should": should, "minimum_should_match": 1}}, nil
	}
	return nil, fmt.Errorf("unsupported clause %T", c)
}
