package handler

import "net/http"

// GET /api/v1/persons
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	persons, err := h.catalog.PersonList(r.Context(), page)
	if err != nil {
		h.writeServiceError(w, r, err, "Persons not found")
		return
	}
	writeEntity(w, r, persons)
}

// GET /api/v1/persons/search
func (h *Handler) SearchPersons(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	persons, err := h.catalog.PersonSearch(r.Context(), searchText(r), page)
	if err != nil {
		h.writeServiceError(w, r, err, "Persons not found")
		return
	}
	writeEntity(w, r, persons)
}

// GET /api/v1/persons/{person_id}
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "person_id")
	if !ok {
		return
	}

	person, err := h.catalog.Person(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Person with ID "+id+" does not exist")
		return
	}
	writeEntity(w, r, person)
}

// GET /api/v1/persons/{person_id}/film
func (h *Handler) GetPersonFilms(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "person_id")
	if !ok {
		return
	}

	films, err := h.catalog.PersonFilms(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Person with ID "+id+" does not exist")
		return
	}
	writeEntity(w, r, films)
}
