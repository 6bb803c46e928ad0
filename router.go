package assets

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Logger to use when the request context carries none (see hlog.NewHandler).
	// The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

// Router creates a router with one GET and HEAD route per file in the table.
// Paths without a file get 404 (Not Found) and other methods 405 (Method Not
// Allowed), both from chi; the resolver only ever sees known files.
func Router(t *Table, config Config) chi.Router {
	fallback := config.Logger
	if fallback == nil {
		fallback = &log.Logger
	}

	r := chi.NewRouter()
	r.Use(recoverer(fallback))
	t.Each(func(f File) {
		handler := serveFile(f, fallback)
		r.Get(f.Route, handler)
		r.Head(f.Route, handler)
	})
	return r
}

// Mount serves the table below prefix on r, e.g. `/static/index.html` for
// prefix `/static`. An empty prefix or "/" mounts at the root.
func Mount(r chi.Router, prefix string, t *Table, config Config) {
	if prefix == "" {
		prefix = "/"
	}
	r.Mount(prefix, Router(t, config))
}

func serveFile(f File, fallback *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := getLogger(r, fallback)
		res := ResolveRequest(f, r)
		logger.Trace().
			Str("route", f.Route).
			Str("if-none-match", r.Header.Get("If-None-Match")).
			Str("if-modified-since", r.Header.Get("If-Modified-Since")).
			Int("status", res.StatusCode).
			Msg("Resolved asset")
		if err := res.Write(w, r); err != nil {
			logger.Error().Err(err).Str("route", f.Route).Msg("Could not write response body to client")
		}
	}
}

// getLogger returns the logger from the request context.
// If no logger is found, it will return the fallback logger.
func getLogger(r *http.Request, fallback *zerolog.Logger) *zerolog.Logger {
	logger := hlog.FromRequest(r)
	if logger.GetLevel() == zerolog.Disabled {
		logger = fallback
	}
	return logger
}
