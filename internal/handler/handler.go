package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/query"
	"github.com/actuallystonmai/catalog-service/internal/retry"
	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Catalog is the read API the handlers serve.
type Catalog interface {
	FilmList(ctx context.Context, genreID string, sort query.SortSpec, page query.Pagination) ([]domain.FilmSummary, error)
	FilmSearch(ctx context.Context, text string, page query.Pagination) ([]domain.FilmSummary, error)
	Film(ctx context.Context, id string) (domain.Film, error)
	PersonList(ctx context.Context, page query.Pagination) ([]domain.Person, error)
	PersonSearch(ctx context.Context, text string, page query.Pagination) ([]domain.Person, error)
	Person(ctx context.Context, id string) (domain.Person, error)
	PersonFilms(ctx context.Context, personID string) ([]domain.FilmSummary, error)
	GenreList(ctx context.Context, page query.Pagination) ([]domain.Genre, error)
	Genre(ctx context.Context, id string) (domain.Genre, error)
}

type Handler struct {
	catalog  Catalog
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(catalog Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With(zap.String("component", "handler")),
	}
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes the JSON error body.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// writeEntity writes a 200 with an ETag over the body, or a bare 304 when
// the client already holds that version.
func writeEntity(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(body, '\n'))
}

// writeServiceError maps core errors to status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case domain.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "not_found", notFound)
	case domain.IsUnavailable(err):
		h.logger.Warn("backend unavailable",
			zap.String("path", r.URL.Path),
			zap.Bool("retries_exhausted", retry.IsExhausted(err)),
			zap.Error(err),
		)
		WriteError(w, http.StatusServiceUnavailable, "backend_unavailable",
			"Catalog storage is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		WriteError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
	default:
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
