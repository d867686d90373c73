// Package pdf renders the purchase-order sheet handed to the supply team.
//
// Page layout (A4):
//
//	HEADER: title + generation date
//	TABLE:  PO | Store | Menu | Qty | Unit price | Amount | Ordered
//	TOTALS: order count / units / amount
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/application/stock"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ stock.SheetRenderer = (*SheetRenderer)(nil)

// SheetRenderer renders the open purchase orders with Maroto v2.
type SheetRenderer struct {
	author string
}

// NewSheetRenderer builds the renderer; author goes into the document metadata.
func NewSheetRenderer(author string) *SheetRenderer {
	return &SheetRenderer{author: author}
}

// RenderPurchaseOrderSheet returns the PDF bytes. An empty list still yields a one-page sheet.
func (g *SheetRenderer) RenderPurchaseOrderSheet(_ context.Context, items []dto.PurchaseOrderListItem, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Purchase orders", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(items), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate purchase order sheet: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(count int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PURCHASE ORDERS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d open", count), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated "+generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("PO", 1, align.Center),
		h("Store", 2, align.Left),
		h("Menu", 2, align.Left),
		h("Qty", 1, align.Right),
		h("Unit price", 2, align.Right),
		h("Amount", 2, align.Right),
		h("Ordered", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(items []dto.PurchaseOrderListItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			cell(strconv.FormatInt(it.PurchaseOrderID, 10), 1, align.Center),
			cell(it.StoreCode, 2, align.Left),
			cell(it.MenuCode, 2, align.Left),
			cell(strconv.Itoa(it.Quantity), 1, align.Right),
			cell(it.Price.StringFixed(2), 2, align.Right),
			cell(lineAmount(it).StringFixed(2), 2, align.Right),
			cell(it.OrderDate.Format("2006-01-02"), 2, align.Center),
		))
	}
	return rows
}

func totalsRow(items []dto.PurchaseOrderListItem) core.Row {
	units := 0
	amount := decimal.Zero
	for _, it := range items {
		units += it.Quantity
		amount = amount.Add(lineAmount(it))
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Orders:", 1),
			label("Units:", 7),
			label("Total amount:", 13),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(items)), 1),
			value(strconv.Itoa(units), 7),
			text.New(amount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

func lineAmount(it dto.PurchaseOrderListItem) decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
