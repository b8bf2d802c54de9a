package session

import (
	"errors"
	"log/slog"
	"net/http"
)

// WithCurrentSession resolves the request's session and, when one exists,
// injects it into the request context. Requests without a session pass
// through untouched; requests with an invalid proof are rejected.
func (rs *Resolver) WithCurrentSession(online bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := rs.Resolve(r.Context(), r, online)
			if err != nil {
				rs.reject(w, r, err)
				return
			}

			if sess != nil {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession resolves the request's session and rejects requests that
// have none, making the session available to downstream handlers via
// FromContext.
func (rs *Resolver) RequireSession(online bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := rs.Resolve(r.Context(), r, online)
			if err != nil {
				rs.reject(w, r, err)
				return
			}
			if sess == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func (rs *Resolver) reject(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrMissingProof) || errors.Is(err, ErrInvalidToken) {
		rs.log.DebugContext(r.Context(), "rejected invalid identity proof", slog.Any("error", err))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Anything else is a store failure; the caller may retry the request.
	rs.log.ErrorContext(r.Context(), "session store failure", slog.Any("error", err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
