package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sizes of a generated catalog.
type Sizes struct {
	Persons int
	Movies  int
}

var DefaultSizes = Sizes{Persons: 40, Movies: 50}

// Catalog is a generated set of documents for every index.
type Catalog struct {
	Genres  []search.GenreDoc
	Persons []search.PersonDoc
	Movies  []search.MovieDoc
}

var genreDescriptions = map[string]string{
	"Action":   "High stakes, fast pace and a lot of stunts.",
	"Drama":    "Character driven stories about people under pressure.",
	"Comedy":   "Films made to make you laugh.",
	"Thriller": "Suspense, danger and a twist at the end.",
	"Sci-Fi":   "Stories shaped by science and technology.",
}

var genres = []string{"Action", "Drama", "Comedy", "Thriller", "Sci-Fi"}

var titles = map[string][]string{
	"Action": {
		"Die Hard", "Mad Max: Fury Road", "John Wick", "The Dark Knight",
		"Gladiator", "Top Gun: Maverick", "The Raid", "Mission: Impossible",
		"Casino Royale", "The Avengers",
	},
	"Drama": {
		"The Shawshank Redemption", "Forrest Gump", "The Godfather",
		"Schindler's List", "A Beautiful Mind", "12 Angry Men",
		"Parasite", "Moonlight", "Whiplash", "The Green Mile",
	},
	"Comedy": {
		"Superbad", "The Hangover", "Bridesmaids", "Step Brothers",
		"Anchorman", "Mean Girls", "Borat", "Hot Fuzz",
		"Groundhog Day", "The Grand Budapest Hotel",
	},
	"Thriller": {
		"Se7en", "Gone Girl", "Zodiac", "Prisoners",
		"Sicario", "No Country for Old Men", "Nightcrawler",
		"Shutter Island", "The Silence of the Lambs", "Oldboy",
	},
	"Sci-Fi": {
		"Blade Runner 2049", "Interstellar", "The Matrix", "Arrival",
		"Dune", "Ex Machina", "Alien", "Inception",
		"Edge of Tomorrow", "2001: A Space Odyssey",
	},
}

var (
	firstNames = []string{"Anna", "Boris", "Clara", "David", "Elena", "Frank", "Greta", "Hugo", "Irina", "Jack"}
	lastNames  = []string{"Adams", "Brooks", "Carter", "Dalton", "Evans", "Fisher", "Grant", "Hughes"}
)

// Generate builds a catalog from rng. The same seed always yields the
// same catalog, ids included.
func Generate(rng *rand.Rand, sizes Sizes) (*Catalog, error) {
	c := &Catalog{}

	for _, name := range genres {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}
		c.Genres = append(c.Genres, search.GenreDoc{ID: id.String(), Name: name, Description: genreDescriptions[name]})
	}

	for i := range sizes.Persons {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames)+i)%len(lastNames)]
		name := first + " " + last
		if i >= len(firstNames)*len(lastNames) {
			name = fmt.Sprintf("%s %d", name, i)
		}
		c.Persons = append(c.Persons, search.PersonDoc{ID: id.String(), FullName: name})
	}

	for i := range sizes.Movies {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}

		genre := genres[i%len(genres)]
		titleList := titles[genre]
		title := titleList[i%len(titleList)]
		if i >= len(genres) {
			title = fmt.Sprintf("%s %d", title, i/len(genres)+1)
		}

		m := search.MovieDoc{
			ID:           id.String(),
			Title:        title,
			IMDbRating:   math.Round(powerLawScore(rng)*100) / 10,
			Description:  fmt.Sprintf("%s is a %s film.", title, strings.ToLower(genre)),
			Genre:        []string{genre},
			Director:     []string{},
			ActorsNames:  []string{},
			WritersNames: []string{},
			Actors:       []search.PersonInMovie{},
			Writers:      []search.PersonInMovie{},
		}
		if rng.Float64() < 0.3 {
			if extra := genres[rng.Intn(len(genres))]; extra != genre {
				m.Genre = append(m.Genre, extra)
			}
		}
		if len(c.Persons) > 0 {
			cast(rng, &m, c.Persons)
		}
		c.Movies = append(c.Movies, m)
	}

	return c, nil
}

// cast credits a director, one or two writers and two to four actors.
func cast(rng *rand.Rand, m *search.MovieDoc, persons []search.PersonDoc) {
	credited := make(map[string]map[domain.Role]bool)
	credit := func(role domain.Role, p search.PersonDoc) {
		if credited[p.ID][role] {
			return
		}
		if credited[p.ID] == nil {
			credited[p.ID] = make(map[domain.Role]bool)
		}
		credited[p.ID][role] = true

		switch role {
		case domain.RoleDirector:
			m.Director = append(m.Director, p.FullName)
		case domain.RoleWriter:
			m.Writers = append(m.Writers, search.PersonInMovie{ID: p.ID, Name: p.FullName})
			m.WritersNames = append(m.WritersNames, p.FullName)
		case domain.RoleActor:
			m.Actors = append(m.Actors, search.PersonInMovie{ID: p.ID, Name: p.FullName})
			m.ActorsNames = append(m.ActorsNames, p.FullName)
		}
	}

	credit(domain.RoleDirector, pick(rng, persons))
	for range 1 + rng.Intn(2) {
		credit(domain.RoleWriter, pick(rng, persons))
	}
	for range 2 + rng.Intn(3) {
		credit(domain.RoleActor, pick(rng, persons))
	}
}

// pick favours the head of the list so some persons are prolific.
func pick(rng *rand.Rand, persons []search.PersonDoc) search.PersonDoc {
	i := int(math.Pow(rng.Float64(), 1.5) * float64(len(persons)))
	return persons[min(i, len(persons)-1)]
}

func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 0.5)
	if raw < 0.01 {
		raw = 0.01
	}
	return math.Round(raw*100) / 100
}

// Setup generates the default catalog with a fixed seed and indexes it.
func Setup(ctx context.Context, indexer search.Indexer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "seed"))

	c, err := Generate(rand.New(rand.NewSource(42)), DefaultSizes)
	if err != nil {
		return fmt.Errorf("generate catalog: %w", err)
	}

	batches := []struct {
		index domain.Index
		docs  func() ([]search.Document, error)
	}{
		{domain.IndexGenres, func() ([]search.Document, error) {
			return documents(c.Genres, func(g search.GenreDoc) string { return g.ID })
		}},
		{domain.IndexPersons, func() ([]search.Document, error) {
			return documents(c.Persons, func(p search.PersonDoc) string { return p.ID })
		}},
		{domain.IndexMovies, func() ([]search.Document, error) {
			return documents(c.Movies, func(m search.MovieDoc) string { return m.ID })
		}},
	}

	for _, b := range batches {
		if err := indexer.EnsureIndex(ctx, b.index); err != nil {
			return err
		}
		docs, err := b.docs()
		if err != nil {
			return err
		}
		logger.Info("inserting documents", zap.String("index", b.index.String()), zap.Int("count", len(docs)))
		if err := indexer.Index(ctx, b.index, docs); err != nil {
			return fmt.Errorf("seed %s: %w", b.index, err)
		}
	}

	logger.Info("seeding complete")
	return nil
}

func documents[T any](items []T, id func(T) string) ([]search.Document, error) {
	docs := make([]search.Document, 0, len(items))
	for _, item := range items {
		doc, err := search.NewDocument(id(item), item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Check seeds the backend unless the movies index already has documents.
func Check(ctx context.Context, indexer search.Indexer, logger *zap.Logger) error {
	if err := indexer.EnsureIndex(ctx, domain.IndexMovies); err != nil {
		return err
	}
	count, err := indexer.Count(ctx, domain.IndexMovies)
	if err != nil {
		return fmt.Errorf("check movies count: %w", err)
	}
	if count > 0 {
		if logger != nil {
			logger.Info("backend already seeded, skipping", zap.Int("movies", count))
		}
		return nil
	}
	return Setup(ctx, indexer, logger)
}
