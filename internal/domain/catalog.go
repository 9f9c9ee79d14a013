package domain

// Index names a collection in the search backend.
type Index string

const (
	IndexMovies  Index = "movies"
	IndexPersons Index = "persons"
	IndexGenres  Index = "genres"
)

// Indices lists every index the catalog reads, in provisioning order.
var Indices = []Index{IndexGenres, IndexPersons, IndexMovies}

func (i Index) String() string { return string(i) }

// Kind selects how a raw document is assembled into a domain value.
type Kind string

const (
	KindFilm        Kind = "film"
	KindFilmSummary Kind = "film_summary"
	KindPerson      Kind = "person"
	KindGenre       Kind = "genre"
)
