package folio

import (
	"sort"

	"github.com/openfolio/folio/daily"
)

// Flow is the net cash spent acquiring securities on one date, summed
// across all tickers of a watchlist. Positive means net buying (an
// external contribution to the portfolio), negative means net selling
// (a withdrawal, cash received).
type Flow struct {
	On     daily.Date
	Amount Money
}

// FlowList is a chronological cash-flow history, one entry per date.
type FlowList []Flow

// Flows aggregates trade histories into a per-date cash-flow list.
// Buys count positive, sells negative, netted per calendar day across
// all the given histories.
func Flows(histories ...TradeList) FlowList {
	byDate := new(daily.Series[Money])
	for _, history := range histories {
		for _, t := range history {
			amount, _ := byDate.Get(t.On)
			byDate.Append(t.On, amount.Add(t.CashFlow()))
		}
	}
	flows := make(FlowList, 0, byDate.Len())
	for on, amount := range byDate.Values() {
		flows = append(flows, Flow{On: on, Amount: amount})
	}
	return flows
}

// HPR computes the daily holding-period return of the portfolio: a
// percentage change series over the valuation's dates in which external
// cash flows are netted out so that a contribution or withdrawal is not
// mistaken for performance.
//
// Cash received from net selling accumulates as a virtual cash balance
// added to the market value; net buying on a date adjusts that date's
// denominator as a same-day contribution. The first date, and any date
// with a zero denominator, yields 0.0 by convention. An empty flow list
// is valid and degrades to a plain value-over-value return.
func HPR(valuation *PortfolioValuation, flows FlowList) *daily.Series[Percent] {
	return hpr(valuation.NetSeries(), flows)
}

func hpr(net *ValuationSeries, flows FlowList) *daily.Series[Percent] {
	cash, contributions := splitFlows(flows)

	returns := new(daily.Series[Percent])
	var prevTotal Money
	first := true
	for on, value := range net.Values() {
		total := value
		if c, ok := cash.AsOf(on); ok {
			total = total.Add(c)
		}

		if first {
			returns.Append(on, 0)
			prevTotal, first = total, false
			continue
		}

		denominator := prevTotal
		if c, ok := contributions.Get(on); ok {
			denominator = denominator.Add(c)
		}
		if denominator.IsZero() {
			returns.Append(on, 0)
		} else {
			pct := total.Decimal().
				Div(denominator.Decimal()).
				Sub(newDecimal(1)).
				Mul(newDecimal(100)).
				Round(3)
			returns.Append(on, Percent(pct.InexactFloat64()))
		}
		prevTotal = total
	}
	return returns
}

// splitFlows separates a flow list into the two series HPR consumes:
// the running cash balance (cumulative sell proceeds, forward-filled by
// the AsOf lookup) and the per-date contributions (net buying amounts,
// consumed once on their own date, never carried forward).
func splitFlows(flows FlowList) (cash, contributions *daily.Series[Money]) {
	cash = new(daily.Series[Money])
	contributions = new(daily.Series[Money])

	sorted := make(FlowList, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].On.Before(sorted[j].On) })

	var balance Money
	for _, f := range sorted {
		if f.Amount.IsNegative() {
			balance = balance.Add(f.Amount.Neg())
		} else if f.Amount.IsPositive() {
			existing, _ := contributions.Get(f.On)
			contributions.Append(f.On, existing.Add(f.Amount))
		}
		cash.Append(f.On, balance)
	}
	return cash, contributions
}
