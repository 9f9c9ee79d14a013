package domain

import "github.com/google/uuid"

type GenreRef struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

type PersonRef struct {
	UUID     uuid.UUID `json:"uuid"`
	FullName string    `json:"full_name"`
}

// Film is the full film card: genres and directors are joined in from
// the genres and persons indices.
type Film struct {
	UUID        uuid.UUID   `json:"uuid"`
	Title       string      `json:"title"`
	IMDbRating  float64     `json:"imdb_rating"`
	Description string      `json:"description"`
	Genre       []GenreRef  `json:"genre"`
	Actors      []PersonRef `json:"actors"`
	Writers     []PersonRef `json:"writers"`
	Directors   []PersonRef `json:"directors"`
}

type FilmSummary struct {
	UUID       uuid.UUID `json:"uuid"`
	Title      string    `json:"title"`
	IMDbRating float64   `json:"imdb_rating"`
}
