// Package pdf implementa la exportación en PDF del reporte de una
// sugerencia: un resumen tabular (estado, fecha, zona, área, reportante,
// email, descripción) seguido de las evidencias adjuntas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Sugerencia   │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Campo | Detalle (estado, fecha, zona, área, ...)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EVIDENCIAS: imágenes adjuntas, una por fila                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/aportes-sugerencias/sugerencias-api/internal/application/suggestions"
	"github.com/aportes-sugerencias/sugerencias-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 41, Green: 128, Blue: 185}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ suggestions.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa suggestions.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, s *entity.Sugerencia, images [][]byte) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Sugerencia", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.4}))

	m.AddRows(tableHeaderRow())
	for _, r := range detailRows(s) {
		m.AddRows(r)
	}

	if len(images) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(8).Add(
			col.New(12).Add(
				text.New("Evidencias adjuntas:", props.Text{
					Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
				}),
			),
		))
		for _, img := range images {
			m.AddRows(imageRow(img))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte y fecha de generación.
func headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Sugerencia", props.Text{
				Style: fontstyle.Bold, Size: 16, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: encabezado Campo | Detalle con fondo primario.
func tableHeaderRow() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(4).Add(
			text.New("Campo", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 2, Left: 2,
			}),
		),
		col.New(8).Add(
			text.New("Detalle", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 2, Left: 2,
			}),
		),
	)
}

// detailRows: una fila por campo del resumen tabular.
func detailRows(s *entity.Sugerencia) []core.Row {
	area := s.AreaName
	if area == "" {
		area = "—"
	}
	fields := [][2]string{
		{"Estado", strings.ToUpper(string(s.Status))},
		{"Fecha", s.CreatedAt.Format("02/01/2006 15:04")},
		{"Zona", s.Zona},
		{"Área", area},
		{"Usuario", s.Nombre + " " + s.Apellido},
		{"Email", s.Email},
		{"Descripción", s.Descripcion},
	}

	rows := make([]core.Row, 0, len(fields))
	for i, f := range fields {
		cell := &props.Cell{}
		if i%2 == 1 {
			cell.BackgroundColor = &props.Color{Red: 243, Green: 244, Blue: 246}
		}
		h := 7.0
		if f[0] == "Descripción" {
			// la descripción puede ocupar varias líneas
			h = 24
		}
		rows = append(rows, row.New(h).WithStyle(cell).Add(
			col.New(4).Add(
				text.New(f[0], props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Left: 2}),
			),
			col.New(8).Add(
				text.New(f[1], props.Text{Size: 9, Top: 2, Left: 2}),
			),
		))
	}
	return rows
}

// imageRow incrusta una evidencia, detectando el formato por sus bytes.
func imageRow(data []byte) core.Row {
	ext := extension.Jpg
	if bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		ext = extension.Png
	}
	return row.New(60).Add(
		col.New(12).Add(
			image.NewFromBytes(data, ext, props.Rect{Center: true, Percent: 90}),
		),
	)
}
