package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/cache"
	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/query"
	"github.com/actuallystonmai/catalog-service/internal/retry"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/actuallystonmai/catalog-service/internal/search/blevestore"
	"github.com/google/uuid"
)

var (
	genreDrama  = "6a0a479b-cfec-41ac-b520-41b2b007b611"
	genreComedy = "5373d043-3f41-4ea8-9947-4b746c601bbd"
	janeDoe     = "b5d2b63a-ed1f-4e46-8320-cf52a32be358"
	johnSmith   = "efdd1787-8871-4aa9-b1d7-f68e55b913ed"
	film1       = "00af52ec-9345-4d66-adbe-50eb917f463a"
	film2       = "00e2e781-7af9-4f82-b4e9-14a488a3e184"
	film3       = "01ab9e34-4ceb-4337-bb78-c56fc9c5c9b3"
	film4       = "023c4b4b-4fd5-47e3-a3f8-f2ce4d1d5f39"
)

// countingStore counts backend calls made through it.
type countingStore struct {
	search.Store
	calls atomic.Int64
	gate  chan struct{}
}

func (s *countingStore) Get(ctx context.Context, index domain.Index, id string) (search.Document, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.Store.Get(ctx, index, id)
}

func (s *countingStore) Search(ctx context.Context, index domain.Index, req *search.Request) ([]search.Document, error) {
	s.calls.Add(1)
	return s.Store.Search(ctx, index, req)
}

func seedCatalog(t *testing.T) *blevestore.Store {
	t.Helper()
	ctx := context.Background()

	store, err := blevestore.NewMemory()
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	put := func(index domain.Index, id string, v any) {
		doc, err := search.NewDocument(id, v)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Index(ctx, index, []search.Document{doc}); err != nil {
			t.Fatalf("index %s/%s: %v", index, id, err)
		}
	}

	jane := search.PersonInMovie{ID: janeDoe, Name: "Jane Doe"}

	put(domain.IndexGenres, genreDrama, search.GenreDoc{ID: genreDrama, Name: "Drama", Description: "Feelings"})
	put(domain.IndexGenres, genreComedy, search.GenreDoc{ID: genreComedy, Name: "Comedy"})
	put(domain.IndexPersons, janeDoe, search.PersonDoc{ID: janeDoe, FullName: "Jane Doe"})
	put(domain.IndexPersons, johnSmith, search.PersonDoc{ID: johnSmith, FullName: "John Smith"})

	put(domain.IndexMovies, film1, search.MovieDoc{
		ID: film1, Title: "First Light", IMDbRating: 8.1, Genre: []string{"Drama"},
		Director: []string{"John Smith"},
		Writers:  []search.PersonInMovie{jane}, WritersNames: []string{"Jane Doe"},
	})
	put(domain.IndexMovies, film2, search.MovieDoc{
		ID: film2, Title: "Second Wind", IMDbRating: 7.5, Genre: []string{"Drama"},
		Writers: []search.PersonInMovie{jane}, WritersNames: []string{"Jane Doe"},
	})
	put(domain.IndexMovies, film3, search.MovieDoc{
		ID: film3, Title: "Third Act", IMDbRating: 6.2, Genre: []string{"Comedy"},
		Writers: []search.PersonInMovie{jane}, WritersNames: []string{"Jane Doe"},
	})
	put(domain.IndexMovies, film4, search.MovieDoc{
		ID: film4, Title: "Fourth Wall", IMDbRating: 9.0, Genre: []string{"Comedy"},
		Actors: []search.PersonInMovie{jane}, ActorsNames: []string{"Jane Doe"},
	})
	return store
}

func newTestCatalog(t *testing.T, store search.Store) (*Catalog, *cache.MemoryStore) {
	t.Helper()
	mem := cache.NewMemoryStore(1000, time.Minute)
	return NewCatalog(store, mem, cache.JSONCodec{}, Options{Coalesce: true}), mem
}

func TestFilmListByGenre(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCatalog(t, seedCatalog(t))

	films, err := c.FilmList(ctx, genreDrama, "", query.Pagination{Number: 1, Size: 2})
	if err != nil {
		t.Fatalf("film list: %v", err)
	}
	if len(films) != 2 {
		t.Fatalf("got %d films, want 2", len(films))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].IMDbRating > films[j].IMDbRating })
	want := []domain.FilmSummary{
		{UUID: uuid.MustParse(film1), Title: "First Light", IMDbRating: 8.1},
		{UUID: uuid.MustParse(film2), Title: "Second Wind", IMDbRating: 7.5},
	}
	for i := range want {
		if films[i] != want[i] {
			t.Errorf("films[%d] = %+v, want %+v", i, films[i], want[i])
		}
	}

	key := "movies::filter::" + genreDrama + "::page_number::1::page_size::2"
	if raw, _ := mem.Get(ctx, key); raw == nil {
		t.Errorf("expected cache entry under %s", key)
	}
}

func TestFilmListSorted(t *testing.T) {
	c, _ := newTestCatalog(t, seedCatalog(t))

	films, err := c.FilmList(context.Background(), "", "-imdb_rating", query.Pagination{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("film list: %v", err)
	}
	if len(films) != 2 || films[0].UUID.String() != film2 || films[1].UUID.String() != film3 {
		t.Errorf("second page = %+v", films)
	}
}

func TestFilmListUnknownGenre(t *testing.T) {
	c, _ := newTestCatalog(t, seedCatalog(t))

	_, err := c.FilmList(context.Background(), uuid.NewString(), "", query.Pagination{})
	if !domain.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestPersonRoleAndFilms(t *testing.T) {
	c, _ := newTestCatalog(t, seedCatalog(t))

	person, err := c.Person(context.Background(), janeDoe)
	if err != nil {
		t.Fatalf("person: %v", err)
	}
	if person.FullName != "Jane Doe" {
		t.Errorf("full name = %q", person.FullName)
	}
	if person.Role != domain.RoleWriter {
		t.Errorf("role = %q, want writer", person.Role)
	}
	want := []string{film4, film1, film2, film3}
	if len(person.FilmIDs) != len(want) {
		t.Fatalf("film ids = %v", person.FilmIDs)
	}
	for i, id := range want {
		if person.FilmIDs[i].String() != id {
			t.Errorf("film_ids[%d] = %s, want %s", i, person.FilmIDs[i], id)
		}
	}
}

func TestPersonFilms(t *testing.T) {
	c, _ := newTestCatalog(t, seedCatalog(t))

	films, err := c.PersonFilms(context.Background(), johnSmith)
	if err != nil {
		t.Fatalf("person films: %v", err)
	}
	if len(films) != 1 || films[0].UUID.String() != film1 {
		t.Errorf("films = %+v", films)
	}
}

func TestFilmEnrichment(t *testing.T) {
	c, _ := newTestCatalog(t, seedCatalog(t))

	film, err := c.Film(context.Background(), film1)
	if err != nil {
		t.Fatalf("film: %v", err)
	}
	if len(film.Genre) != 1 || film.Genre[0].UUID.String() != genreDrama {
		t.Errorf("genre = %+v", film.Genre)
	}
	if len(film.Directors) != 1 || film.Directors[0].UUID.String() != johnSmith {
		t.Errorf("directors = %+v", film.Directors)
	}
	if len(film.Writers) != 1 || film.Writers[0].FullName != "Jane Doe" {
		t.Errorf("writers = %+v", film.Writers)
	}
}

func TestCacheHitSkipsBackend(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: seedCatalog(t)}
	c, _ := newTestCatalog(t, store)

	miss, err := c.Film(ctx, film1)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	calls := store.calls.Load()
	if calls == 0 {
		t.Fatal("miss did not reach the backend")
	}

	hit, err := c.Film(ctx, film1)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if store.calls.Load() != calls {
		t.Errorf("hit reached the backend: %d calls, want %d", store.calls.Load(), calls)
	}
	if hit.UUID != miss.UUID || hit.Title != miss.Title || len(hit.Genre) != len(miss.Genre) {
		t.Errorf("hit %+v differs from miss %+v", hit, miss)
	}
}

func TestCacheCodecsAgree(t *testing.T) {
	ctx := context.Background()
	store := seedCatalog(t)

	byCodec := map[string]domain.Person{}
	for _, name := range []string{cache.CodecJSON, cache.CodecMsgpack} {
		codec, err := cache.NewCodec(name)
		if err != nil {
			t.Fatal(err)
		}
		c := NewCatalog(store, cache.NewMemoryStore(100, time.Minute), codec, Options{})
		p, err := c.Person(ctx, janeDoe)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		byCodec[name] = p
	}
	a, b := byCodec[cache.CodecJSON], byCodec[cache.CodecMsgpack]
	if a.UUID != b.UUID || a.Role != b.Role || len(a.FilmIDs) != len(b.FilmIDs) {
		t.Errorf("json %+v != msgpack %+v", a, b)
	}
}

func TestRetrieveNotFound(t *testing.T) {
	c, _ := newTestCatalog(t, seedCatalog(t))

	if _, err := c.Genre(context.Background(), uuid.NewString()); !domain.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestCoalescedMisses(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: seedCatalog(t), gate: make(chan struct{})}
	c, _ := newTestCatalog(t, store)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Genre(ctx, genreDrama)
			errs <- err
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(store.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("genre: %v", err)
		}
	}
	if n := store.calls.Load(); n != 1 {
		t.Errorf("backend calls = %d, want 1", n)
	}
}

func TestCoalescedMissSurvivesCancelledCaller(t *testing.T) {
	store := &countingStore{Store: seedCatalog(t), gate: make(chan struct{})}
	c, _ := newTestCatalog(t, store)

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan error, 1)
	go func() {
		_, err := c.Film(firstCtx, film1)
		first <- err
	}()

	// wait for the first caller to reach the backend
	deadline := time.Now().Add(2 * time.Second)
	for store.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first caller never reached the backend")
		}
		time.Sleep(5 * time.Millisecond)
	}

	second := make(chan error, 1)
	go func() {
		film, err := c.Film(context.Background(), film1)
		if err == nil && film.Title != "First Light" {
			err = errors.New("unexpected film " + film.Title)
		}
		second <- err
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller err = %v, want context.Canceled", err)
	}

	close(store.gate)
	select {
	case err := <-second:
		if err != nil {
			t.Fatalf("live caller err = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("live caller did not return")
	}
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, &retry.ExhaustedError{Attempts: 3, Err: errors.New("connection refused")}
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (brokenCache) Delete(context.Context, ...string) error { return nil }

func (brokenCache) Ping(context.Context) error { return nil }

func TestCacheUnavailable(t *testing.T) {
	c := NewCatalog(seedCatalog(t), brokenCache{}, nil, Options{})

	if _, err := c.GenreList(context.Background(), query.Pagination{}); !domain.IsUnavailable(err) {
		t.Errorf("err = %v, want unavailable", err)
	}
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCatalog(t, seedCatalog(t))

	if _, err := c.GenreList(ctx, query.Pagination{}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Genre(ctx, genreDrama); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Flush(ctx, domain.IndexGenres); err != nil {
		t.Fatalf("flush: %v", err)
	}
	for _, key := range []string{"genres", cache.ByIDKey(domain.IndexGenres, genreDrama)} {
		if raw, _ := mem.Get(ctx, key); raw != nil {
			t.Errorf("%s survived the flush", key)
		}
	}
}
