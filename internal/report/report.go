// Package report renders paginated PDF reports of solicitudes. Layout is a
// single forward pass with a manual vertical cursor: block heights for the
// variable text paragraphs are measured before drawing, and a page break is
// emitted whenever the reserve at the bottom of the page would be entered by
// the next record. Pagination never backtracks.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"fundacite.org/internal/solicitud"
)

// Filename is the fixed attachment name for generated reports.
const Filename = "reporte_solicitudes.pdf"

// ContentType is the media type of generated reports.
const ContentType = "application/pdf"

// Layout constants, in points on a US Letter page.
const (
	margin        = 50.0
	indent        = 10.0
	lineHeight    = 15.0
	leading       = 14.0
	bottomReserve = 100.0
	titleAdvance  = 30.0
	dateAdvance   = 20.0
)

// Generator renders solicitud sets into PDF documents.
type Generator struct {
	now func() time.Time
}

// Option configures Generator behavior.
type Option func(*Generator)

// WithClock overrides the time source used for the generation timestamp.
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) {
		if fn != nil {
			g.now = fn
		}
	}
}

// NewGenerator constructs a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the records, in the order supplied, into a single PDF
// byte stream. An empty set yields a one-page document stating so.
func (g *Generator) Generate(sols []solicitud.Solicitud) ([]byte, error) {
	doc := g.build(sols)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) build(sols []solicitud.Solicitud) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, height := pdf.GetPageSize()

	pdf.AddPage()
	y := margin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(margin, y, tr("Reporte de Solicitudes FUNDACITE"))
	y += titleAdvance

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(margin, y, tr("Fecha de generación: "+g.now().Format("2006-01-02 15:04:05")))
	y += dateAdvance

	if len(sols) == 0 {
		pdf.Text(margin, y, tr("No hay solicitudes para mostrar en este reporte."))
		return pdf
	}

	paragraphWidth := width - 2*margin - 2*indent
	for _, sol := range sols {
		// Greedy forward pagination: the check happens before the record,
		// never after; an already-drawn record is never repaginated.
		if y > height-bottomReserve {
			pdf.AddPage()
			y = margin
			pdf.SetFont("Helvetica", "B", 18)
			pdf.Text(margin, y, tr("Reporte de Solicitudes (Continuación)"))
			y += titleAdvance
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(margin, y, tr(fmt.Sprintf("Solicitud ID: %d", sol.ID)))
		y += lineHeight

		quienAtendio := sol.QuienAtendio
		if quienAtendio == "" {
			quienAtendio = "N/A"
		}
		details := []string{
			"Cédula: " + sol.Cedula,
			"Nombre: " + sol.Nombre,
			"Dpto. Emisor: " + sol.Dependencia,
			"Tipo: " + sol.Tipo,
			"Dpto. Destino: " + sol.DepartamentoDestino,
			"Fecha de Creación: " + sol.FechaCreacion.Format("2006-01-02 15:04:05"),
			"Estado: " + sol.Estado,
			"Quien Atendió: " + quienAtendio,
		}
		pdf.SetFont("Helvetica", "", 10)
		for _, detail := range details {
			pdf.Text(margin+indent, y, tr(detail))
			y += lineHeight
		}

		y += 5
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(margin+indent, y, tr("Descripción:"))
		y += lineHeight
		y += g.paragraph(pdf, tr, margin+indent, y, paragraphWidth, sol.Descripcion) + 10

		if sol.QueHizo != "" {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Text(margin+indent, y, tr("Resolución:"))
			y += lineHeight
			y += g.paragraph(pdf, tr, margin+indent, y, paragraphWidth, sol.QueHizo) + 20
		} else {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Text(margin+indent, y, tr("Resolución: N/A"))
			y += 20
		}

		y += 10
		pdf.Line(margin, y, width-margin, y)
		y += 20
	}
	return pdf
}

// paragraph measures the wrapped block against the available width first,
// then draws it with its top at the cursor, and returns the measured height.
// Wrapping happens on the raw UTF-8 text; the cp1252 translation is applied
// per line at draw time only, because its output is not valid UTF-8 and
// SplitText would misread it.
func (g *Generator) paragraph(pdf *gofpdf.Fpdf, tr func(string) string, x, y, width float64, text string) float64 {
	pdf.SetFont("Helvetica", "", 10)
	lines := pdf.SplitText(text, width)
	for i, line := range lines {
		pdf.Text(x, y+leading*float64(i+1), tr(line))
	}
	return leading * float64(len(lines))
}
