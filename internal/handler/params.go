package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/actuallystonmai/catalog-service/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 50
)

type pageParams struct {
	Number int `validate:"min=1"`
	Size   int `validate:"min=1,max=100"`
}

type filmListParams struct {
	Genre string `validate:"omitempty,uuid"`
	Sort  string `validate:"omitempty,oneof=imdb_rating -imdb_rating"`
}

func intParam(r *http.Request, name string, fallback int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parsePage reads page[number] and page[size], writing a 400 on bad input.
func (h *Handler) parsePage(w http.ResponseWriter, r *http.Request) (query.Pagination, bool) {
	number, ok := intParam(r, "page[number]", defaultPageNumber)
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page[number] parameter")
		return query.Pagination{}, false
	}
	size, ok := intParam(r, "page[size]", defaultPageSize)
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page[size] parameter")
		return query.Pagination{}, false
	}

	p := pageParams{Number: number, Size: size}
	if err := h.validate.Struct(p); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_parameter",
			"page[number] must be at least 1 and page[size] between 1 and 100")
		return query.Pagination{}, false
	}
	return query.Pagination{Number: p.Number, Size: p.Size}, true
}

// parseID reads a UUID path parameter, writing a 400 on bad input.
func parseID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name+" parameter")
		return "", false
	}
	return id.String(), true
}

func searchText(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("query"))
}
