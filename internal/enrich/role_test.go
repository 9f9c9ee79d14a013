package enrich

import (
	"testing"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name  string
		films []search.MovieDoc
		want  domain.Role
	}{
		{
			name: "no films",
			want: "",
		},
		{
			name: "majority writer",
			films: []search.MovieDoc{
				{ID: "1", WritersNames: []string{"Jane Doe"}},
				{ID: "2", WritersNames: []string{"Jane Doe"}},
				{ID: "3", WritersNames: []string{"Jane Doe", "Bob"}},
				{ID: "4", ActorsNames: []string{"Jane Doe"}},
			},
			want: domain.RoleWriter,
		},
		{
			name: "tie goes to first token",
			films: []search.MovieDoc{
				{ID: "1", Director: []string{"Jane Doe"}},
				{ID: "2", ActorsNames: []string{"Jane Doe"}},
			},
			want: domain.RoleDirector,
		},
		{
			name: "field order within a film breaks ties",
			films: []search.MovieDoc{
				{ID: "1", ActorsNames: []string{"Jane Doe"}, Director: []string{"Jane Doe"}},
			},
			want: domain.RoleActor,
		},
		{
			name: "name must match an element",
			films: []search.MovieDoc{
				{ID: "1", ActorsNames: []string{"Jane Doe Jr."}},
			},
			want: "",
		},
		{
			name: "films without id are skipped",
			films: []search.MovieDoc{
				{ActorsNames: []string{"Jane Doe"}},
				{ActorsNames: []string{"Jane Doe"}},
				{ID: "3", WritersNames: []string{"Jane Doe"}},
			},
			want: domain.RoleWriter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRole("Jane Doe", tt.films); got != tt.want {
				t.Errorf("ResolveRole() = %q, want %q", got, tt.want)
			}
		})
	}
}
