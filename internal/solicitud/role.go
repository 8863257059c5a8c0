package solicitud

// Role is the acting department's relation to a record, computed once per
// update and matched exhaustively. The two mutable field partitions are
// disjoint: no field may ever be written by both roles.
type Role int

const (
	RoleNeither Role = iota
	RoleSender
	RoleRecipient
)

func (r Role) String() string {
	switch r {
	case RoleSender:
		return "emisor"
	case RoleRecipient:
		return "receptor"
	default:
		return "ninguno"
	}
}

// RoleFor resolves the acting department's role on a record. A department that
// is both sender and recipient (a request to itself) resolves to sender, the
// first branch of the dispatch.
func RoleFor(s Solicitud, departamento string) Role {
	switch {
	case departamento == "":
		return RoleNeither
	case departamento == s.Dependencia:
		return RoleSender
	case departamento == s.DepartamentoDestino:
		return RoleRecipient
	default:
		return RoleNeither
	}
}

// UpdateInput is the partial update payload. Nil means "not supplied"; fields
// outside the acting role's partition are silently ignored.
type UpdateInput struct {
	Descripcion         *string `json:"descripcion"`
	DepartamentoDestino *string `json:"departamento_destino"`
	Estado              *string `json:"estado"`
	QuienAtendio        *string `json:"quien_atendio"`
	QueHizo             *string `json:"que_hizo"`
}

// ApplyUpdate applies the role-permitted subset of the payload to a copy of
// the record and returns it together with the resolved role. A department that
// is neither sender nor recipient gets ErrForbidden and no field changes.
func ApplyUpdate(s Solicitud, departamento string, in UpdateInput) (Solicitud, Role, error) {
	role := RoleFor(s, departamento)
	switch role {
	case RoleSender:
		if in.Descripcion != nil {
			s.Descripcion = *in.Descripcion
		}
		if in.DepartamentoDestino != nil {
			s.DepartamentoDestino = *in.DepartamentoDestino
		}
	case RoleRecipient:
		if in.Estado != nil {
			s.Estado = *in.Estado
		}
		if in.QuienAtendio != nil {
			s.QuienAtendio = *in.QuienAtendio
		}
		if in.QueHizo != nil {
			s.QueHizo = *in.QueHizo
		}
	case RoleNeither:
		return Solicitud{}, role, ErrForbidden
	}
	return s, role, nil
}
