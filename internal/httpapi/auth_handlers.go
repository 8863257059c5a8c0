package httpapi

import (
	"errors"
	"net/http"

	"fundacite.org/internal/audit"
	"fundacite.org/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.auth.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, r, http.StatusUnauthorized, "Usuario o contraseña inválidos")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	token, expiresAt, err := auth.IssueSessionToken(user, a.sessionTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	setSessionCookie(w, token, expiresAt)
	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"username":     user.Username,
		"departamento": user.Departamento,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Login exitoso",
		"departamento": user.Departamento,
		"username":     user.Username,
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		_ = audit.LogEvent(r.Context(), "auth.logout", map[string]any{
			"username":     session.Username,
			"departamento": session.Departamento,
		})
	}
	clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Sesión cerrada")
}

func (a *API) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	session, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"departamento": session.Departamento,
		"username":     session.Username,
	})
}
