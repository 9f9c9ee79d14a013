package handler

import "net/http"

// GET /api/v1/genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	genres, err := h.catalog.GenreList(r.Context(), page)
	if err != nil {
		h.writeServiceError(w, r, err, "Genres not found")
		return
	}
	writeEntity(w, r, genres)
}

// GET /api/v1/genres/{genre_id}
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "genre_id")
	if !ok {
		return
	}

	genre, err := h.catalog.Genre(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Genre with ID "+id+" does not exist")
		return
	}
	writeEntity(w, r, genre)
}
