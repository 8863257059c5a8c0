package httpapi

import (
	"fmt"
	"net/http"

	"fundacite.org/internal/audit"
	"fundacite.org/internal/obs"
	"fundacite.org/internal/report"
	"fundacite.org/internal/solicitud"
)

type exportRequest struct {
	ExportAll bool    `json:"export_all"`
	IDs       []int64 `json:"ids"`
}

func (a *API) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.ExportAll && len(req.IDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "No se especificaron solicitudes para exportar.")
		return
	}

	var (
		sols []solicitud.Solicitud
		err  error
	)
	if req.ExportAll {
		sols, err = a.solicitudes.All(r.Context())
	} else {
		sols, err = a.solicitudes.FindByIDs(r.Context(), req.IDs)
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	pdf, err := a.reports.Generate(sols)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	obs.ObserveReport(len(sols))
	_ = audit.LogEvent(r.Context(), "report.export", map[string]any{
		"export_all": req.ExportAll,
		"records":    len(sols),
	})

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", report.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
