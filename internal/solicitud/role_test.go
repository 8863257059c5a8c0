package solicitud

import (
	"errors"
	"testing"
	"time"
)

func ptr(s string) *string { return &s }

func sample() Solicitud {
	return Solicitud{
		ID:                  1,
		Cedula:              "V-12345678",
		Nombre:              "Ana Pérez",
		Dependencia:         "DTISC",
		Tipo:                "Soporte",
		Descripcion:         "Equipo sin red",
		DepartamentoDestino: "DIAC",
		FechaCreacion:       time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Estado:              EstadoRecibida,
	}
}

func TestRoleFor(t *testing.T) {
	s := sample()
	cases := []struct {
		departamento string
		want         Role
	}{
		{"DTISC", RoleSender},
		{"DIAC", RoleRecipient},
		{"DGA", RoleNeither},
		{"", RoleNeither},
	}
	for _, tc := range cases {
		if got := RoleFor(s, tc.departamento); got != tc.want {
			t.Fatalf("RoleFor(%q)=%v, want %v", tc.departamento, got, tc.want)
		}
	}

	// A record addressed to its own department resolves to sender.
	s.DepartamentoDestino = "DTISC"
	if got := RoleFor(s, "DTISC"); got != RoleSender {
		t.Fatalf("self-addressed record: got %v, want RoleSender", got)
	}
}

func TestApplyUpdateSenderPartition(t *testing.T) {
	s := sample()
	in := UpdateInput{
		Descripcion:         ptr("Equipo sin red ni teléfono"),
		DepartamentoDestino: ptr("DGA"),
		// Outside the sender partition; must be silently ignored.
		Estado:       ptr("Atendida"),
		QuienAtendio: ptr("Carlos"),
		QueHizo:      ptr("Nada"),
	}
	got, role, err := ApplyUpdate(s, "DTISC", in)
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if role != RoleSender {
		t.Fatalf("unexpected role: %v", role)
	}
	if got.Descripcion != "Equipo sin red ni teléfono" || got.DepartamentoDestino != "DGA" {
		t.Fatalf("sender fields not applied: %+v", got)
	}
	if got.Estado != EstadoRecibida || got.QuienAtendio != "" || got.QueHizo != "" {
		t.Fatalf("sender update leaked into recipient fields: %+v", got)
	}
}

func TestApplyUpdateRecipientPartition(t *testing.T) {
	s := sample()
	in := UpdateInput{
		Estado:       ptr("Atendida"),
		QuienAtendio: ptr("Carlos Gómez"),
		QueHizo:      ptr("Se reemplazó el cable de red"),
		// Outside the recipient partition; must be silently ignored.
		Descripcion:         ptr("otra cosa"),
		DepartamentoDestino: ptr("DGA"),
	}
	got, role, err := ApplyUpdate(s, "DIAC", in)
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if role != RoleRecipient {
		t.Fatalf("unexpected role: %v", role)
	}
	if got.Estado != "Atendida" || got.QuienAtendio != "Carlos Gómez" || got.QueHizo != "Se reemplazó el cable de red" {
		t.Fatalf("recipient fields not applied: %+v", got)
	}
	if got.Descripcion != s.Descripcion || got.DepartamentoDestino != s.DepartamentoDestino {
		t.Fatalf("recipient update leaked into sender fields: %+v", got)
	}
}

func TestApplyUpdateThirdPartyForbidden(t *testing.T) {
	s := sample()
	_, role, err := ApplyUpdate(s, "DGA", UpdateInput{Estado: ptr("Atendida")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if role != RoleNeither {
		t.Fatalf("unexpected role: %v", role)
	}
}

func TestApplyUpdateOmittedFieldsUntouched(t *testing.T) {
	s := sample()
	got, _, err := ApplyUpdate(s, "DIAC", UpdateInput{Estado: ptr("En proceso")})
	if err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}
	if got.QuienAtendio != "" || got.QueHizo != "" {
		t.Fatalf("omitted fields changed: %+v", got)
	}
	if got.Estado != "En proceso" {
		t.Fatalf("supplied field not applied: %+v", got)
	}
}

func TestVisibleTo(t *testing.T) {
	s := sample()
	if !s.VisibleTo("DTISC") || !s.VisibleTo("DIAC") {
		t.Fatal("sender and recipient must both see the record")
	}
	if s.VisibleTo("DGA") || s.VisibleTo("") {
		t.Fatal("third parties must not see the record")
	}
}
