package handler

import (
	"net/http"

	"github.com/actuallystonmai/catalog-service/internal/query"
)

// GET /api/v1/films
func (h *Handler) ListFilms(w http.ResponseWriter, r *http.Request) {
	params := filmListParams{
		Genre: r.URL.Query().Get("filter[genre]"),
		Sort:  r.URL.Query().Get("sort"),
	}
	if err := h.validate.Struct(params); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_parameter", "Invalid filter[genre] or sort parameter")
		return
	}
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	films, err := h.catalog.FilmList(r.Context(), params.Genre, query.SortSpec(params.Sort), page)
	if err != nil {
		h.writeServiceError(w, r, err, "Genre not found")
		return
	}
	writeEntity(w, r, films)
}

// GET /api/v1/films/search
func (h *Handler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	films, err := h.catalog.FilmSearch(r.Context(), searchText(r), page)
	if err != nil {
		h.writeServiceError(w, r, err, "Films not found")
		return
	}
	writeEntity(w, r, films)
}

// GET /api/v1/films/{film_id}
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "film_id")
	if !ok {
		return
	}

	film, err := h.catalog.Film(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Film with ID "+id+" does not exist")
		return
	}
	writeEntity(w, r, film)
}
