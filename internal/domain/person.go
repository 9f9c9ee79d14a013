package domain

import "github.com/google/uuid"

type Role string

const (
	RoleActor    Role = "actor"
	RoleWriter   Role = "writer"
	RoleDirector Role = "director"
)

type Person struct {
	UUID     uuid.UUID   `json:"uuid"`
	FullName string      `json:"full_name"`
	Role     Role        `json:"role"`
	FilmIDs  []uuid.UUID `json:"film_ids"`
}
