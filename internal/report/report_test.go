package report

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"fundacite.org/internal/solicitud"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
}

func record(id int64) solicitud.Solicitud {
	return solicitud.Solicitud{
		ID:                  id,
		Cedula:              fmt.Sprintf("V-%d", id),
		Nombre:              "Ana Pérez",
		Dependencia:         "DTISC",
		Tipo:                "Soporte",
		Descripcion:         "Equipo sin red",
		DepartamentoDestino: "DIAC",
		FechaCreacion:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Estado:              solicitud.EstadoRecibida,
	}
}

func TestGenerateEmptySetProducesOnePage(t *testing.T) {
	g := NewGenerator(WithClock(fixedClock))
	doc := g.build(nil)
	if got := doc.PageCount(); got != 1 {
		t.Fatalf("expected 1 page for empty set, got %d", got)
	}
	if err := doc.Error(); err != nil {
		t.Fatalf("document error: %v", err)
	}
}

func TestGenerateOutputsPDFBytes(t *testing.T) {
	g := NewGenerator(WithClock(fixedClock))
	data, err := g.Generate([]solicitud.Solicitud{record(1)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", data[:16])
	}
}

func TestGenerateHandlesAccentedText(t *testing.T) {
	// Variable blocks wrap on the raw UTF-8 text. Accented characters are the
	// norm in this domain and must never derail line measurement.
	g := NewGenerator(WithClock(fixedClock))

	sol := record(1)
	sol.Descripcion = "Revisión de equipo dañado en la oficina de administración"
	sol.QuienAtendio = "José Núñez"
	sol.QueHizo = "Se reemplazó el disco y se verificó la conexión"
	data, err := g.Generate([]solicitud.Solicitud{sol})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", data[:16])
	}
}

func TestPaginationBreaksBeforeBottomReserve(t *testing.T) {
	// With a one-line description and no resolution, each record occupies 229
	// points. The cursor starts at 100 after the title block; a new page is
	// required once the cursor passes 692, which the fourth record triggers.
	g := NewGenerator(WithClock(fixedClock))

	three := []solicitud.Solicitud{record(1), record(2), record(3)}
	if got := g.build(three).PageCount(); got != 1 {
		t.Fatalf("3 records: expected 1 page, got %d", got)
	}

	four := append(three, record(4))
	if got := g.build(four).PageCount(); got != 2 {
		t.Fatalf("4 records: expected 2 pages, got %d", got)
	}
}

func TestPaginationNeverSplitsFixedBlock(t *testing.T) {
	// Ten uniform records: page 1 holds three, each continuation page starts
	// at 80 and holds records at 80, 309, 538 before passing the 692 mark, so
	// the break pattern is 3 + 3 + 3 + 1.
	var sols []solicitud.Solicitud
	for i := int64(1); i <= 10; i++ {
		sols = append(sols, record(i))
	}
	g := NewGenerator(WithClock(fixedClock))
	if got := g.build(sols).PageCount(); got != 4 {
		t.Fatalf("10 records: expected 4 pages, got %d", got)
	}
}

func TestVariableBlocksMayOverflowWithoutBreak(t *testing.T) {
	// The page-break check precedes each record; a long description drawn as
	// part of the current record never forces a retroactive break.
	long := record(1)
	for i := 0; i < 40; i++ {
		long.Descripcion += " equipo sin red en la oficina principal"
	}
	g := NewGenerator(WithClock(fixedClock))
	if got := g.build([]solicitud.Solicitud{long}).PageCount(); got != 1 {
		t.Fatalf("single record: expected 1 page, got %d", got)
	}
}

func TestResolutionMeasuredBlockReducesRecordsPerPage(t *testing.T) {
	// A resolved record carries a measured resolution block instead of the
	// fixed-height placeholder line. With a resolution long enough to wrap
	// into several lines the record grows past 306 points, which caps every
	// page at two records: ten of them need five pages instead of four.
	resolved := func(id int64) solicitud.Solicitud {
		s := record(id)
		s.QuienAtendio = "Carlos Gómez"
		for i := 0; i < 12; i++ {
			s.QueHizo += "Se reemplazó el cable de red y se verificó la conexión. "
		}
		return s
	}
	var sols []solicitud.Solicitud
	for i := int64(1); i <= 10; i++ {
		sols = append(sols, resolved(i))
	}
	g := NewGenerator(WithClock(fixedClock))
	if got := g.build(sols).PageCount(); got != 5 {
		t.Fatalf("10 resolved records: expected 5 pages, got %d", got)
	}
}
