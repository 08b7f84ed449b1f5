package renderer

import (
	"strings"

	"github.com/openfolio/folio"
	"github.com/shopspring/decimal"
)

// barWidth is the width of the text bar chart, in characters.
const barWidth = 20

var decimalBarWidth = decimal.NewFromInt(barWidth)

// dashboardView is the flattened, display-ready projection of a
// dashboard, consumed by the templates.
type dashboardView struct {
	Name      string
	On        string
	NetValue  string
	Return    string
	Top       []exposureRow
	Bars      []barRow
	Positions []positionRow
}

type exposureRow struct {
	Ticker string
	Value  string
	Share  string
}

type barRow struct {
	Ticker string
	Bar    string
	Value  string
}

type positionRow struct {
	Ticker      string
	Quantity    string
	AverageCost string
	RealizedPNL string
}

// DashboardMarkdown renders a dashboard to a markdown string.
func DashboardMarkdown(d *folio.Dashboard) string {
	view := dashboardView{
		Name:     d.Name,
		NetValue: d.NetValue.String(),
		Return:   d.Return.SignedString(),
	}
	if !d.On.IsZero() {
		view.On = d.On.String()
	}
	for _, e := range d.Top {
		view.Top = append(view.Top, exposureRow{
			Ticker: e.Ticker,
			Value:  e.MarketValue.String(),
			Share:  e.Share.String(),
		})
	}
	view.Bars = barRows(d.Bars)
	for _, p := range d.Positions {
		view.Positions = append(view.Positions, positionRow{
			Ticker:      p.Ticker,
			Quantity:    p.NetQuantity.String(),
			AverageCost: p.AverageCost.String(),
			RealizedPNL: p.RealizedPNL.SignedString(),
		})
	}

	partials := map[string]string{
		"dashboard_title":     "dashboard_title.md",
		"dashboard_exposures": "dashboard_exposures.md",
		"dashboard_positions": "dashboard_positions.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, view)
}

// barRows scales exposures to a fixed-width text bar chart.
func barRows(exposures []folio.Exposure) []barRow {
	var max folio.Money
	for _, e := range exposures {
		if abs := e.MarketValue.Abs(); max.LessThan(abs) {
			max = abs
		}
	}

	rows := make([]barRow, 0, len(exposures))
	for _, e := range exposures {
		width := 0
		if !max.IsZero() {
			scaled := e.MarketValue.Abs().Decimal().
				Div(max.Decimal()).
				Mul(decimalBarWidth).
				Round(0)
			width = int(scaled.IntPart())
		}
		rows = append(rows, barRow{
			Ticker: e.Ticker,
			Bar:    strings.Repeat("#", width),
			Value:  e.MarketValue.SignedString(),
		})
	}
	return rows
}
