package folio

import (
	"slices"
	"sort"

	"github.com/openfolio/folio/daily"
)

// PortfolioValuation is a date-indexed table with one market-value
// column per ticker: the outer join of all per-ticker valuation series,
// each column independently forward-filled after the join. Columns are
// never filled before joining, which would fabricate values on dates
// where the ticker did not have a price yet.
type PortfolioValuation struct {
	tickers []string
	dates   []daily.Date
	columns map[string]column
}

// column holds one ticker's values across all table dates. valid is
// false for leading dates before the ticker's first valuation.
type column struct {
	values []Money
	valid  []bool
}

// Combine outer-joins per-ticker valuation series into one portfolio
// valuation table. Tickers come out in sorted order. An empty input
// yields an empty (but usable) table.
func Combine(perTicker map[string]*ValuationSeries) *PortfolioValuation {
	pv := &PortfolioValuation{columns: make(map[string]column)}

	pv.tickers = make([]string, 0, len(perTicker))
	allDates := make([][]daily.Date, 0, len(perTicker))
	for ticker, series := range perTicker {
		pv.tickers = append(pv.tickers, ticker)
		allDates = append(allDates, series.Dates())
	}
	slices.Sort(pv.tickers)

	for on := range daily.Union(allDates...) {
		pv.dates = append(pv.dates, on)
	}

	for _, ticker := range pv.tickers {
		series := perTicker[ticker]
		col := column{
			values: make([]Money, len(pv.dates)),
			valid:  make([]bool, len(pv.dates)),
		}
		for i, on := range pv.dates {
			// AsOf is the post-join forward-fill: dates after the
			// ticker's last point carry its last known value.
			if v, ok := series.AsOf(on); ok {
				col.values[i], col.valid[i] = v, true
			}
		}
		pv.columns[ticker] = col
	}
	return pv
}

// Tickers returns the table's column names in sorted order.
func (pv *PortfolioValuation) Tickers() []string { return pv.tickers }

// Dates returns the table's row dates in chronological order.
func (pv *PortfolioValuation) Dates() []daily.Date { return pv.dates }

// IsEmpty reports whether the table has no rows or no columns.
func (pv *PortfolioValuation) IsEmpty() bool {
	return len(pv.dates) == 0 || len(pv.tickers) == 0
}

// MarketValue returns one cell of the table.
func (pv *PortfolioValuation) MarketValue(ticker string, on daily.Date) (Money, bool) {
	col, ok := pv.columns[ticker]
	if !ok {
		return Money{}, false
	}
	i, found := slices.BinarySearchFunc(pv.dates, on, daily.Date.Compare)
	if !found || !col.valid[i] {
		return Money{}, false
	}
	return col.values[i], true
}

// NetValuation sums all ticker market values on the i-th date.
// Unresolved cells count as 0 only here, at summation time.
func (pv *PortfolioValuation) NetValuation(i int) Money {
	var total Money
	for _, ticker := range pv.tickers {
		col := pv.columns[ticker]
		if col.valid[i] {
			total = total.Add(col.values[i])
		}
	}
	return total
}

// NetSeries reduces the table to a single portfolio market-value series.
func (pv *PortfolioValuation) NetSeries() *ValuationSeries {
	net := new(ValuationSeries)
	for i, on := range pv.dates {
		net.Append(on, pv.NetValuation(i))
	}
	return net
}

// Exposure is one slice of the portfolio on its most recent date.
type Exposure struct {
	Ticker      string
	MarketValue Money
	Share       Percent // share of total absolute exposure, pie views only
}

// latestRow extracts (ticker, value) pairs from the most recent date of
// the table, in column order, skipping unresolved cells.
func (pv *PortfolioValuation) latestRow() []Exposure {
	if pv.IsEmpty() {
		return nil
	}
	last := len(pv.dates) - 1
	row := make([]Exposure, 0, len(pv.tickers))
	for _, ticker := range pv.tickers {
		col := pv.columns[ticker]
		if col.valid[last] {
			row = append(row, Exposure{Ticker: ticker, MarketValue: col.values[last]})
		}
	}
	return row
}

// OtherBucket is the synthetic ticker aggregating the exposures beyond
// the top-n cut of TopExposures.
const OtherBucket = "Other"

// TopExposures ranks the portfolio's positions on the most recent date
// by absolute exposure, as percentage shares of the total absolute
// exposure (rounded to 2 decimal places), in descending order. When more
// than n tickers have a non-zero exposure, the remainder collapses into
// one "Other" row carrying the summed value and share. Exact-zero
// exposures are excluded entirely, from the top set and from "Other".
func (pv *PortfolioValuation) TopExposures(n int) []Exposure {
	row := pv.latestRow()

	var total Money
	exposures := make([]Exposure, 0, len(row))
	for _, e := range row {
		abs := e.MarketValue.Abs()
		if abs.IsZero() {
			continue
		}
		exposures = append(exposures, Exposure{Ticker: e.Ticker, MarketValue: abs})
		total = total.Add(abs)
	}
	if len(exposures) == 0 {
		return nil
	}
	for i := range exposures {
		share := exposures[i].MarketValue.Decimal().
			Div(total.Decimal()).
			Mul(newDecimal(100)).
			Round(2)
		exposures[i].Share = Percent(share.InexactFloat64())
	}
	sort.SliceStable(exposures, func(i, j int) bool {
		return exposures[j].Share < exposures[i].Share
	})

	if len(exposures) <= n {
		return exposures
	}
	top := exposures[:n:n]
	other := Exposure{Ticker: OtherBucket}
	for _, e := range exposures[n:] {
		other.MarketValue = other.MarketValue.Add(e.MarketValue)
		other.Share += e.Share
	}
	return append(top, other)
}

// BarExposures returns up to n positions from the most recent date,
// excluding exact zeros, sorted by signed market value ascending and
// keeping the last n. With short positions in the mix this is the
// algebraic top-n, not the top-n by magnitude; it intentionally
// reproduces the historical chart behavior.
func (pv *PortfolioValuation) BarExposures(n int) []Exposure {
	row := pv.latestRow()

	exposures := make([]Exposure, 0, len(row))
	for _, e := range row {
		if e.MarketValue.IsZero() {
			continue
		}
		exposures = append(exposures, e)
	}
	sort.SliceStable(exposures, func(i, j int) bool {
		return exposures[i].MarketValue.LessThan(exposures[j].MarketValue)
	})
	if len(exposures) > n {
		exposures = exposures[len(exposures)-n:]
	}
	return exposures
}

// LastPosition is the most recent snapshot of one ticker's position.
type LastPosition struct {
	Ticker      string
	NetQuantity Quantity
	AverageCost Money
	RealizedPNL Money
}

// LastPositions reduces per-ticker breakdowns to their most recent
// snapshot, in sorted ticker order, truncated to at most cap entries.
// Tickers with an empty breakdown are skipped.
func LastPositions(perTicker map[string]Breakdown, cap int) []LastPosition {
	tickers := make([]string, 0, len(perTicker))
	for ticker := range perTicker {
		tickers = append(tickers, ticker)
	}
	slices.Sort(tickers)

	positions := make([]LastPosition, 0, len(tickers))
	for _, ticker := range tickers {
		breakdown := perTicker[ticker]
		if len(breakdown) == 0 {
			continue
		}
		last := breakdown.Latest()
		positions = append(positions, LastPosition{
			Ticker:      ticker,
			NetQuantity: last.NetQuantity,
			AverageCost: last.AverageCost,
			RealizedPNL: last.RealizedPNL,
		})
		if len(positions) == cap {
			break
		}
	}
	return positions
}
