package assets

import (
	"net/http"

	"github.com/rs/zerolog"
)

// recoverer recovers from panics in the handlers below it, logs them and
// answers 500 (Internal Server Error).
func recoverer(fallback *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					getLogger(r, fallback).WithLevel(zerolog.PanicLevel).
						Interface("error", err).
						Str("url", r.URL.String()).
						Msg("Panic in asset handler")
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
