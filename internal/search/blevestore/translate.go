package blevestore

import (
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

func translate(c search.Clause) (query.Query, error) {
	switch c := c.(type) {
	case nil:
		return bleve.NewMatchAllQuery(), nil

	case search.Term:
		q := bleve.NewTermQuery(c.Value)
		q.SetField(c.Field)
		return q, nil

	case search.Terms:
		if len(c.Values) == 0 {
			return bleve.NewMatchNoneQuery(), nil
		}
		qs := make([]query.Query, 0, len(c.Values))
		for _, v := range c.Values {
			q := bleve.NewTermQuery(v)
			q.SetField(c.Field)
			qs = append(qs, q)
		}
		return bleve.NewDisjunctionQuery(qs...), nil

	case search.Nested:
		// nested objects are flattened into dotted field names
		return translate(c.Query)

	case search.MatchPhrase:
		q := bleve.NewMatchPhraseQuery(c.Text)
		q.SetField(c.Field)
		return q, nil

	case search.QueryString:
		// Text is analyzed and matched term by term on each field. Query
		// string syntax such as AND or quoted phrases is not interpreted here.
		if len(c.Fields) == 0 {
			return bleve.NewQueryStringQuery(c.Query), nil
		}
		qs := make([]query.Query, 0, len(c.Fields))
		for _, f := range c.Fields {
			q := bleve.NewMatchQuery(c.Query)
			q.SetField(f)
			qs = append(qs, q)
		}
		return bleve.NewDisjunctionQuery(qs...), nil

	case search.AnyOf:
		qs := make([]query.Query, 0, len(c))
		for _, sub := range c {
			q, err := translate(sub)
			if err != nil {
				return nil, err
			}
			qs = append(qs, q)
		}
		return bleve.NewDisjunctionQuery(qs...), nil
	}
	return nil, fmt.Errorf("unsupported clause %T", c)
}

// sortOrder converts "field:desc" into bleve's "-field".
func sortOrder(fields []string) []string {
	order := make([]string, 0, len(fields))
	for _, s := range fields {
		field, desc := search.ParseSort(s)
		if desc {
			field = "-" + field
		}
		order = append(order, field)
	}
	return order
}
