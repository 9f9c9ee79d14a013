package cache

import (
	"testing"

	"github.com/actuallystonmai/catalog-service/internal/domain"
)

func TestByIDKey(t *testing.T) {
	got := ByIDKey(domain.IndexPersons, "4a8d")
	if got != "persons::id::4a8d" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestKeySkipsEmptyValues(t *testing.T) {
	got := NewKey(domain.IndexGenres).
		With("filter", "").
		With("page_number", "2").
		With("query", "").
		String()

	if got != "genres::page_number::2" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestKeyWithDoesNotShareParts(t *testing.T) {
	base := NewKey(domain.IndexMovies).With("filter", "g1")
	a := base.With("sort", "title")
	b := base.With("sort", "-imdb_rating")

	if a.String() != "movies::filter::g1::sort::title" {
		t.Errorf("unexpected key %q", a.String())
	}
	if b.String() != "movies::filter::g1::sort::-imdb_rating" {
		t.Errorf("unexpected key %q", b.String())
	}
	if base.String() != "movies::filter::g1" {
		t.Errorf("base key changed to %q", base.String())
	}
}

func TestIndexPattern(t *testing.T) {
	if got := IndexPattern(domain.IndexMovies); got != "movies::*" {
		t.Errorf("unexpected pattern %q", got)
	}
}

func TestKeyEscapesSeparatorInValues(t *testing.T) {
	forged := NewKey(domain.IndexMovies).
		With("query", "star::sort::-imdb_rating").
		String()
	genuine := NewKey(domain.IndexMovies).
		With("query", "star").
		With("sort", "-imdb_rating").
		String()

	if forged == genuine {
		t.Fatalf("query text forged the key %q", genuine)
	}
	if forged != "movies::query::star%3A%3Asort%3A%3A-imdb_rating" {
		t.Errorf("unexpected key %q", forged)
	}
	if got := NewKey(domain.IndexMovies).With("query", "100%").String(); got != "movies::query::100%25" {
		t.Errorf("unexpected key %q", got)
	}
}
