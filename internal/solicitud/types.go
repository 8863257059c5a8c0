package solicitud

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EstadoRecibida is the state stamped on every newly created solicitud.
const EstadoRecibida = "Recibida"

// Solicitud is a request record routed from a sender department (dependencia)
// to a recipient department (departamento_destino). The status field travels
// on the wire as "estado".
type Solicitud struct {
	ID                  int64     `json:"id"`
	Cedula              string    `json:"cedula"`
	Nombre              string    `json:"nombre"`
	Dependencia         string    `json:"dependencia"`
	Tipo                string    `json:"tipo"`
	Descripcion         string    `json:"descripcion"`
	DepartamentoDestino string    `json:"departamento_destino"`
	FechaCreacion       time.Time `json:"fecha_creacion"`
	Estado              string    `json:"estado"`
	QuienAtendio        string    `json:"quien_atendio"`
	QueHizo             string    `json:"que_hizo"`
}

// MarshalJSON emits null for the two nullable resolution fields while they
// are unset. The frontend distinguishes null from empty string there.
func (s Solicitud) MarshalJSON() ([]byte, error) {
	type plain Solicitud
	aux := struct {
		plain
		QuienAtendio *string `json:"quien_atendio"`
		QueHizo      *string `json:"que_hizo"`
	}{plain: plain(s)}
	if s.QuienAtendio != "" {
		aux.QuienAtendio = &s.QuienAtendio
	}
	if s.QueHizo != "" {
		aux.QueHizo = &s.QueHizo
	}
	return json.Marshal(aux)
}

// CreateInput carries the client-supplied fields of a new solicitud. The
// sender department is never part of it: it is stamped from the session.
type CreateInput struct {
	Cedula              string `json:"cedula"`
	Nombre              string `json:"nombre"`
	Tipo                string `json:"tipo"`
	Descripcion         string `json:"descripcion"`
	DepartamentoDestino string `json:"departamento_destino"`
}

// Validate checks required-field presence.
func (in CreateInput) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"cedula", in.Cedula},
		{"nombre", in.Nombre},
		{"tipo", in.Tipo},
		{"descripcion", in.Descripcion},
		{"departamento_destino", in.DepartamentoDestino},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: falta el campo %s", ErrInvalidInput, field.name)
		}
	}
	return nil
}

// New builds a solicitud from validated input. The acting department becomes
// the dependencia and the estado is always forced to Recibida, regardless of
// anything the payload carried.
func New(in CreateInput, dependencia string, now time.Time) Solicitud {
	return Solicitud{
		Cedula:              in.Cedula,
		Nombre:              in.Nombre,
		Dependencia:         dependencia,
		Tipo:                in.Tipo,
		Descripcion:         in.Descripcion,
		DepartamentoDestino: in.DepartamentoDestino,
		FechaCreacion:       now.UTC(),
		Estado:              EstadoRecibida,
	}
}

// VisibleTo reports whether a department may see this record: it must be the
// sender or the recipient.
func (s Solicitud) VisibleTo(departamento string) bool {
	return departamento != "" &&
		(departamento == s.Dependencia || departamento == s.DepartamentoDestino)
}
