package router

import (
	"context"
	"net/http"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Options struct {
	Logger *zap.Logger

	// Debug disables access control.
	Debug     bool
	SecretKey string

	// Checks are run by /health; a failing check makes it report 503.
	Checks map[string]func(context.Context) error

	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func Setup(h *handler.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLog(logger.With(zap.String("component", "http"))))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/films", h.ListFilms)

		r.Group(func(r chi.Router) {
			if !opts.Debug {
				r.Use(RequireJWT(opts.SecretKey, logger))
			}
			r.Get("/films/search", h.SearchFilms)
			r.Get("/films/{film_id}", h.GetFilm)
			r.Get("/persons", h.ListPersons)
			r.Get("/persons/search", h.SearchPersons)
			r.Get("/persons/{person_id}", h.GetPerson)
			r.Get("/persons/{person_id}/film", h.GetPersonFilms)
			r.Get("/genres", h.ListGenres)
			r.Get("/genres/{genre_id}", h.GetGenre)
		})
	})

	r.Get("/health", healthCheck(opts.Checks))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	return r
}

func healthCheck(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := handler.HealthResponse{Status: "ok"}
		status := http.StatusOK

		if len(checks) > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			resp.Checks = make(map[string]string, len(checks))
			for name, check := range checks {
				if err := check(ctx); err != nil {
					resp.Checks[name] = err.Error()
					resp.Status = "degraded"
					status = http.StatusServiceUnavailable
					continue
				}
				resp.Checks[name] = "ok"
			}
		}

		handler.WriteJSON(w, status, resp)
	}
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
