package elastic

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

func assertJSON(t *testing.T, got []byte, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("decode got: %v", err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("decode want: %v", err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("body mismatch:\n got %s\nwant %s", got, want)
	}
}

func intp(n int) *int { return &n }

func TestEncodeRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *search.Request
		want string
	}{
		{
			name: "nil request",
			req:  nil,
			want: `{}`,
		},
		{
			name: "sort and window",
			req:  &search.Request{Sort: []string{"imdb_rating:desc", "title"}, From: intp(20), Size: intp(10)},
			want: `{"sort":[{"imdb_rating":{"order":"desc"}},"title"],"from":20,"size":10}`,
		},
		{
			name: "genre filter",
			req: &search.Request{Body: &search.Body{
				Query: search.Term{Field: "genre", Value: "Action"},
			}},
			want: `{"query":{"bool":{"filter":[{"term":{"genre":"Action"}}]}}}`,
		},
		{
			name: "search query scores",
			req: &search.Request{Body: &search.Body{
				Query: search.QueryString{Query: "star", Fields: []string{"title"}},
			}},
			want: `{"query":{"bool":{"must":[{"query_string":{"query":"star","fields":["title"]}}]}}}`,
		},
		{
			name: "films by person",
			req: &search.Request{
				Size: intp(5),
				Body: &search.Body{
					Query:  search.FilmsByPerson(search.PersonDoc{ID: "p1", FullName: "Jane Doe"}),
					Sort:   []string{"imdb_rating:desc"},
					Source: []string{"id", "title", "imdb_rating"},
					Limit:  search.MaxRelated,
				},
			},
			want: `{
				"query":{"bool":{"filter":[{"bool":{"minimum_should_match":1,"should":[
					{"nested":{"path":"actors","query":{"term":{"actors.id":"p1"}}}},
					{"nested":{"path":"writers","query":{"term":{"writers.id":"p1"}}}},
					{"match_phrase":{"director":"Jane Doe"}}
				]}}]}},
				"sort":[{"imdb_rating":{"order":"desc"}}],
				"_source":["id","title","imdb_rating"],
				"size":5
			}`,
		},
		{
			name: "terms with body limit",
			req: &search.Request{Body: &search.Body{
				Query: search.Terms{Field: "name.raw", Values: []string{"Action", "Drama"}},
				Limit: search.MaxRelated,
			}},
			want: `{"query":{"bool":{"filter":[{"terms":{"name.raw":["Action","Drama"]}}]}},"size":1000}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeRequest(tt.req)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			assertJSON(t, got, tt.want)
		})
	}
}

func TestBulkBody(t *testing.T) {
	docs := []search.Document{
		{ID: "g1", Source: json.RawMessage(`{"id": "g1",
			"name": "Action"}`)},
		{ID: "g2", Source: json.RawMessage(`{"id":"g2","name":"Drama"}`)},
	}
	body, err := BulkBody(domain.IndexGenres, docs)
	if err != nil {
		t.Fatalf("bulk body: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), body)
	}
	assertJSON(t, []byte(lines[0]), `{"index":{"_index":"genres","_id":"g1"}}`)
	assertJSON(t, []byte(lines[1]), `{"id":"g1","name":"Action"}`)
	assertJSON(t, []byte(lines[2]), `{"index":{"_index":"genres","_id":"g2"}}`)
}

func TestIndexBody(t *testing.T) {
	body, err := IndexBody(domain.IndexMovies)
	if err != nil {
		t.Fatal(err)
	}
	props := body["mappings"].(map[string]any)["properties"].(map[string]any)
	if got := props[search.FieldActors].(map[string]any)["type"]; got != "nested" {
		t.Errorf("actors type = %v, want nested", got)
	}
	if _, ok := props[search.FieldTitle].(map[string]any)["fields"]; !ok {
		t.Error("title has no raw sub-field")
	}

	if _, err := IndexBody(domain.Index("trailers")); err == nil {
		t.Error("expected error for unknown index")
	}
}
