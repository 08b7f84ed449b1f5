package folio

import (
	"github.com/openfolio/folio/daily"
)

// PriceSeries is a daily close-price series for one ticker. Gaps
// (non-trading days, missing vendor data) are expected; consumers
// forward-fill them, never interpolate.
type PriceSeries = daily.Series[Money]

// ValuationSeries is a daily market-value series for one ticker.
type ValuationSeries = daily.Series[Money]

// DailyValuation joins a position breakdown against a close-price series
// to produce the position's daily market value.
//
// The position quantity is stamped on its trade dates and forward-filled
// across all later price dates; price gaps forward-fill implicitly since
// values are only emitted on price dates. Output is restricted to dates
// on or after the first breakdown date (a position has no valuation
// before it exists), and rounded to 3 decimal places. Empty inputs
// yield an empty series.
func DailyValuation(breakdown Breakdown, prices *PriceSeries) *ValuationSeries {
	valuation := new(ValuationSeries)
	if len(breakdown) == 0 || prices.Len() == 0 {
		return valuation
	}

	positions := positionSeries(breakdown)
	first := breakdown[0].On
	for on, price := range prices.Values() {
		if on.Before(first) {
			continue
		}
		snap, ok := positions.AsOf(on)
		if !ok {
			continue // unresolved join, nothing to value yet
		}
		valuation.Append(on, price.Mul(snap.NetQuantity).Round(3))
	}
	return valuation
}

// UnrealizedReturns derives the daily unrealized percentage gain of an
// open position: the distance between the market price and the average
// cost of the open lots, signed by the position direction. Dates where
// the average cost is 0 (flat position) are skipped, not zeroed.
func UnrealizedReturns(breakdown Breakdown, prices *PriceSeries) *daily.Series[Percent] {
	returns := new(daily.Series[Percent])
	if len(breakdown) == 0 || prices.Len() == 0 {
		return returns
	}

	positions := positionSeries(breakdown)
	first := breakdown[0].On
	for on, price := range prices.Values() {
		if on.Before(first) {
			continue
		}
		snap, ok := positions.AsOf(on)
		if !ok || snap.AverageCost.IsZero() {
			continue
		}
		sign := newDecimal(snap.NetQuantity.Sign())
		pct := price.Sub(snap.AverageCost).Decimal().
			Div(snap.AverageCost.Decimal()).
			Mul(sign).
			Mul(newDecimal(100)).
			Round(3)
		returns.Append(on, Percent(pct.InexactFloat64()))
	}
	return returns
}

// positionSeries indexes a breakdown by date. Several trades on the same
// date collapse to the last one, which is the end-of-day position.
func positionSeries(breakdown Breakdown) *daily.Series[PositionSnapshot] {
	s := new(daily.Series[PositionSnapshot])
	for _, snap := range breakdown {
		s.Append(snap.On, snap)
	}
	return s
}
