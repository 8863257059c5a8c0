package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fundacite.org/internal/audit"
	"fundacite.org/internal/solicitud"
)

func (a *API) handleSolicitudes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listSolicitudes(w, r)
	case http.MethodPost:
		a.createSolicitud(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listSolicitudes(w http.ResponseWriter, r *http.Request) {
	session, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	sols, err := a.solicitudes.ListVisibleTo(r.Context(), session.Departamento)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if sols == nil {
		sols = []solicitud.Solicitud{}
	}
	writeJSON(w, http.StatusOK, sols)
}

func (a *API) createSolicitud(w http.ResponseWriter, r *http.Request) {
	session, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	var in solicitud.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Error al crear la tarea",
			"error":   err.Error(),
		})
		return
	}
	if err := in.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Error al crear la tarea",
			"error":   err.Error(),
		})
		return
	}
	s := solicitud.New(in, session.Departamento, a.now())
	if err := a.solicitudes.Create(r.Context(), &s); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Error al crear la tarea",
			"error":   err.Error(),
		})
		return
	}
	_ = audit.LogEvent(r.Context(), "solicitud.create", map[string]any{
		"id":                   s.ID,
		"departamento_destino": s.DepartamentoDestino,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Tarea creada con éxito",
		"id":      s.ID,
	})
}

func (a *API) handleSolicitudByID(w http.ResponseWriter, r *http.Request) {
	id, ok := solicitudID(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		a.updateSolicitud(w, r, id)
	case http.MethodDelete:
		a.deleteSolicitud(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) updateSolicitud(w http.ResponseWriter, r *http.Request, id int64) {
	session, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	var in solicitud.UpdateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Error al actualizar la tarea",
			"error":   err.Error(),
		})
		return
	}
	current, err := a.solicitudes.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, solicitud.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	updated, role, err := solicitud.ApplyUpdate(current, session.Departamento, in)
	if err != nil {
		if errors.Is(err, solicitud.ErrForbidden) {
			writeError(w, r, http.StatusForbidden, "No tienes permiso para modificar esta tarea.")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if err := a.solicitudes.Update(r.Context(), updated); err != nil {
		if errors.Is(err, solicitud.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Error al actualizar la tarea",
			"error":   err.Error(),
		})
		return
	}
	_ = audit.LogEvent(r.Context(), "solicitud.update", map[string]any{
		"id":  id,
		"rol": role.String(),
	})
	writeMessage(w, http.StatusOK, "Tarea actualizada con éxito")
}

func (a *API) deleteSolicitud(w http.ResponseWriter, r *http.Request, id int64) {
	if err := a.solicitudes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, solicitud.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Error al eliminar la tarea",
			"error":   err.Error(),
		})
		return
	}
	_ = audit.LogEvent(r.Context(), "solicitud.delete", map[string]any{"id": id})
	writeMessage(w, http.StatusOK, "Tarea eliminada con éxito")
}

// solicitudID parses the numeric id out of /api/solicitudes/<id>. Anything
// non-numeric, or any deeper path, is a 404.
func solicitudID(path string) (int64, bool) {
	rest := strings.TrimPrefix(path, "/api/solicitudes/")
	if rest == "" || rest == path || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
