package httpapi

import (
	"net/http"
	"time"

	"fundacite.org/internal/auth"
)

const sessionCookieName = "solicitudes_session"

// withSession resolves the session cookie, if any, and attaches the session
// to the request context. It never rejects: handlers that need a session
// enforce it themselves, matching the per-endpoint authorization rules.
func (a *API) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		session, err := auth.ParseSessionToken(cookie.Value)
		if err != nil {
			// Stale or tampered cookie: drop it and continue unauthenticated.
			clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		ctx := auth.ContextWithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession extracts the session or answers 401. The false return means
// the response has already been written.
func (a *API) requireSession(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "No autorizado")
		return auth.Session{}, false
	}
	return session, true
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
