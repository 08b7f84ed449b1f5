package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/openfolio/folio"
	"github.com/openfolio/folio/daily"
)

// HistoryMarkdown renders the portfolio valuation history as a markdown
// table, one row per date, with the daily return when available.
func HistoryMarkdown(name string, valuation *folio.ValuationSeries, returns *daily.Series[folio.Percent]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Valuation: %s\n\n", name)

	section := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Date | Market Value | Return |")
		fmt.Fprintln(w, "|:-----|-------------:|-------:|")
	})
	for on, value := range valuation.Values() {
		section.PrintHeader(&b)
		ret := "-"
		if r, ok := returns.Get(on); ok {
			ret = r.SignedString()
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", on, value, ret)
	}
	section.PrintFooter(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "\n_No valuation yet: record trades and fetch prices first._")
		return valuation.Len() == 0
	})
	return b.String()
}

// PositionsMarkdown renders per-ticker positions as a markdown table.
func PositionsMarkdown(name string, positions []folio.LastPosition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions: %s\n\n", name)

	section := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Ticker | Quantity | Average Cost | Realized P&L |")
		fmt.Fprintln(w, "|:-------|---------:|-------------:|-------------:|")
	})
	for _, p := range positions {
		section.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			p.Ticker, p.NetQuantity, p.AverageCost, p.RealizedPNL.SignedString())
	}
	section.PrintFooter(&b)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "_No position recorded._")
		return len(positions) == 0
	})
	return b.String()
}
