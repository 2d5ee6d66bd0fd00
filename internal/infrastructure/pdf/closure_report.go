// Package pdf genera el informe imprimible del cierre mensual de
// inventario del CPR.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Centro + mes cerrado │ Fecha de cierre             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONCILIACIÓN: inicial / compras / final / consumo / merma  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HISTÓRICO: tabla de cierres anteriores del centro          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SNAPSHOT: inventario valorado por ubicación y artículo     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cpr-api/internal/application/closure"
	"github.com/jhoicas/cpr-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ closure.ReportGenerator = (*ClosureReportGenerator)(nil)

// ClosureReportGenerator implementa closure.ReportGenerator usando Maroto v2.
type ClosureReportGenerator struct{}

// NewClosureReportGenerator construye el generador.
func NewClosureReportGenerator() *ClosureReportGenerator { return &ClosureReportGenerator{} }

// GenerarInformeCierre genera el PDF del cierre y devuelve sus bytes.
func (g *ClosureReportGenerator) GenerarInformeCierre(cierre *entity.CierreInventario, historico []*entity.CierreInventario) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de inventario "+cierre.Mes, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(cierre))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(conciliacionRows(cierre)...)

	if len(historico) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("HISTÓRICO DE CIERRES"))
		m.AddRows(historicoHeaderRow())
		for _, h := range historico {
			m.AddRows(historicoRow(h))
		}
	}

	if len(cierre.Snapshot) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("INVENTARIO VALORADO AL CIERRE"))
		m.AddRows(snapshotHeaderRow())
		for _, l := range cierre.Snapshot {
			m.AddRows(snapshotRow(l))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(cierre *entity.CierreInventario) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CIERRE MENSUAL DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Centro: "+cierre.CentroID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Mes "+cierre.Mes, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Cerrado: "+cierre.FechaCierre.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// conciliacionRows: la identidad contable del cierre, línea a línea.
func conciliacionRows(cierre *entity.CierreInventario) []core.Row {
	linea := func(label string, valor decimal.Decimal, destacado bool) core.Row {
		textProps := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		labelProps := props.Text{Size: 9, Align: align.Left, Left: 1, Top: 1}
		if destacado {
			textProps.Style = fontstyle.Bold
			labelProps.Style = fontstyle.Bold
			if valor.IsNegative() {
				textProps.Color = colorAlert
			} else {
				textProps.Color = colorPrimary
			}
			labelProps.Color = colorPrimary
		}
		return row.New(7).Add(
			col.New(7).Add(text.New(label, labelProps)),
			col.New(5).Add(text.New(valor.StringFixed(2)+" €", textProps)),
		)
	}
	return []core.Row{
		sectionTitle("CONCILIACIÓN DEL MES"),
		linea("Inventario inicial (cierre anterior)", cierre.ValorInventarioInicial, false),
		linea("Compras del mes", cierre.ValorCompras, false),
		linea("Inventario final (recuento valorado)", cierre.ValorInventarioFinal, false),
		linea("Consumo contable (inicial + compras − final)", cierre.ValorConsumoReal, false),
		linea("Consumo trazado por producción", cierre.ValorConsumoTrazado, false),
		linea("MERMA DESCONOCIDA", cierre.ValorMermaDesconocida, true),
	}
}

func historicoHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Mes", 2, align.Left),
		h("Inicial", 2, align.Right),
		h("Compras", 2, align.Right),
		h("Final", 2, align.Right),
		h("Consumo", 2, align.Right),
		h("Merma", 2, align.Right),
	)
}

func historicoRow(c *entity.CierreInventario) core.Row {
	v := func(d decimal.Decimal, size int) core.Col {
		p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		return col.New(size).Add(text.New(d.StringFixed(2), p))
	}
	mermaProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
	if c.ValorMermaDesconocida.IsNegative() {
		mermaProps.Color = colorAlert
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(c.Mes, props.Text{Size: 8, Top: 1})),
		v(c.ValorInventarioInicial, 2),
		v(c.ValorCompras, 2),
		v(c.ValorInventarioFinal, 2),
		v(c.ValorConsumoReal, 2),
		col.New(2).Add(text.New(c.ValorMermaDesconocida.StringFixed(2), mermaProps)),
	)
}

func snapshotHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Ubicación", 3, align.Left),
		h("Artículo", 4, align.Left),
		h("Stock", 2, align.Right),
		h("Ud.", 1, align.Center),
		h("Valoración", 2, align.Right),
	)
}

func snapshotRow(l entity.LineaSnapshot) core.Row {
	return row.New(5).Add(
		col.New(3).Add(text.New(l.UbicacionNombre, props.Text{Size: 7.5, Top: 0.5})),
		col.New(4).Add(text.New(l.NombreArticulo, props.Text{Size: 7.5, Top: 0.5})),
		col.New(2).Add(text.New(l.Stock.StringFixed(3), props.Text{Size: 7.5, Align: align.Right, Top: 0.5, Right: 1})),
		col.New(1).Add(text.New(l.Unidad, props.Text{Size: 7.5, Align: align.Center, Top: 0.5})),
		col.New(2).Add(text.New(l.Valoracion.StringFixed(2), props.Text{Size: 7.5, Align: align.Right, Top: 0.5, Right: 1})),
	)
}
