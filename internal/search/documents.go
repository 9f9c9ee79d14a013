package search

import "github.com/actuallystonmai/catalog-service/internal/domain"

// Field names shared by the index mappings and the queries built on them.
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldIMDbRating   = "imdb_rating"
	FieldDescription  = "description"
	FieldGenre        = "genre"
	FieldDirector     = "director"
	FieldActorsNames  = "actors_names"
	FieldWritersNames = "writers_names"
	FieldActors       = "actors"
	FieldWriters      = "writers"
	FieldActorsID     = "actors.id"
	FieldWritersID    = "writers.id"
	FieldFullName     = "full_name"
	FieldFullNameRaw  = "full_name.raw"
	FieldName         = "name"
	FieldNameRaw      = "name.raw"
)

// MaxRelated bounds the sub-searches that join related documents.
const MaxRelated = 1000

type PersonInMovie struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MovieDoc struct {
	ID           string          `json:"id"`
	IMDbRating   float64         `json:"imdb_rating"`
	Genre        []string        `json:"genre"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Director     []string        `json:"director"`
	ActorsNames  []string        `json:"actors_names"`
	WritersNames []string        `json:"writers_names"`
	Actors       []PersonInMovie `json:"actors"`
	Writers      []PersonInMovie `json:"writers"`
}

type PersonDoc struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type GenreDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FilmsByPerson matches films where the person is credited as actor or
// writer, or appears in the director field.
func FilmsByPerson(person PersonDoc) Clause {
	return AnyOf{
		Nested{Path: FieldActors, Query: Term{Field: FieldActorsID, Value: person.ID}},
		Nested{Path: FieldWriters, Query: Term{Field: FieldWritersID, Value: person.ID}},
		MatchPhrase{Field: FieldDirector, Text: person.FullName},
	}
}

// SearchFields maps each index to the fields full-text search runs on.
var SearchFields = map[domain.Index][]string{
	domain.IndexMovies:  {FieldTitle},
	domain.IndexPersons: {FieldFullName},
}
