package folio

import (
	"testing"

	"github.com/openfolio/folio/daily"
)

func portfolio(t *testing.T, points map[string]float64) *PortfolioValuation {
	t.Helper()
	return Combine(map[string]*ValuationSeries{
		"AAPL": valuationSeries(t, points),
	})
}

func flow(on string, amount float64) Flow {
	return Flow{On: daily.MustParse(on), Amount: M(amount, "USD")}
}

func assertReturns(t *testing.T, got *daily.Series[Percent], want map[string]Percent) {
	t.Helper()
	if got.Len() != len(want) {
		t.Fatalf("returns has %d points, want %d", got.Len(), len(want))
	}
	for on, p := range want {
		r, ok := got.Get(daily.MustParse(on))
		if !ok {
			t.Fatalf("no return on %s", on)
		}
		if !r.Equal(p) {
			t.Errorf("return on %s = %s, want %s", on, r, p)
		}
	}
}

// With no external flows the return is the plain value-over-value change.
func TestHPRZeroFlows(t *testing.T) {
	pv := portfolio(t, map[string]float64{
		"2025-01-02": 1000,
		"2025-01-03": 1050,
		"2025-01-06": 1029,
	})
	assertReturns(t, HPR(pv, nil), map[string]Percent{
		"2025-01-02": 0,
		"2025-01-03": 5,  // 1050/1000
		"2025-01-06": -2, // 1029/1050
	})
}

func TestHPRSingleRow(t *testing.T) {
	pv := portfolio(t, map[string]float64{"2025-01-02": 1000})
	assertReturns(t, HPR(pv, nil), map[string]Percent{"2025-01-02": 0})
}

// Buying more on a date inflates the market value without any
// performance: the same-day contribution neutralizes it.
func TestHPRContributionIsNotPerformance(t *testing.T) {
	pv := portfolio(t, map[string]float64{
		"2025-02-03": 1000,
		"2025-02-04": 2000, // 1000 of fresh money at unchanged prices
		"2025-02-05": 2100,
	})
	flows := FlowList{flow("2025-02-04", 1000)}
	assertReturns(t, HPR(pv, flows), map[string]Percent{
		"2025-02-03": 0,
		"2025-02-04": 0, // 2000 / (1000 + 1000)
		"2025-02-05": 5,
	})
}

// Selling converts market value into cash: the running cash balance
// keeps the total steady so the withdrawal reads as 0%, and the balance
// forward-fills across later dates.
func TestHPRWithdrawalIsNotPerformance(t *testing.T) {
	pv := portfolio(t, map[string]float64{
		"2025-03-03": 1000,
		"2025-03-04": 500, // half the position sold at unchanged prices
		"2025-03-05": 550,
	})
	flows := FlowList{flow("2025-03-04", -500)}
	assertReturns(t, HPR(pv, flows), map[string]Percent{
		"2025-03-03": 0,
		"2025-03-04": 0, // (500+500) / 1000
		"2025-03-05": 5, // (550+500) / (500+500)
	})
}

// The contribution adjusts only its own date, it never carries forward.
func TestHPRContributionConsumedOnce(t *testing.T) {
	pv := portfolio(t, map[string]float64{
		"2025-04-01": 1000,
		"2025-04-02": 2000,
		"2025-04-03": 2200,
	})
	flows := FlowList{flow("2025-04-02", 1000)}
	assertReturns(t, HPR(pv, flows), map[string]Percent{
		"2025-04-01": 0,
		"2025-04-02": 0,
		"2025-04-03": 10, // 2200/2000, no leftover denominator adjustment
	})
}

func TestHPRZeroDenominator(t *testing.T) {
	pv := portfolio(t, map[string]float64{
		"2025-05-01": 0,
		"2025-05-02": 100,
	})
	assertReturns(t, HPR(pv, nil), map[string]Percent{
		"2025-05-01": 0,
		"2025-05-02": 0, // previous total is 0, convention not NaN
	})
}

func TestFlowsAggregatePerDate(t *testing.T) {
	aapl := TradeList{
		buy("2025-01-02", 10, 100),  // +1000
		sell("2025-01-02", 2, 110),  // -220
		sell("2025-01-03", 5, 120),  // -600
	}
	msft := TradeList{
		NewTrade(daily.MustParse("2025-01-02"), "MSFT", Buy, Q(1), M(400, "USD"), ""), // +400
	}

	flows := Flows(aapl, msft)
	if len(flows) != 2 {
		t.Fatalf("Flows returned %d entries, want 2", len(flows))
	}
	if flows[0].On != daily.MustParse("2025-01-02") || !flows[0].Amount.Decimal().Equal(newDecimal(1180)) {
		t.Errorf("flow[0] = %s %s, want 2025-01-02 1180", flows[0].On, flows[0].Amount.Decimal())
	}
	if flows[1].On != daily.MustParse("2025-01-03") || !flows[1].Amount.Decimal().Equal(newDecimal(-600)) {
		t.Errorf("flow[1] = %s %s, want 2025-01-03 -600", flows[1].On, flows[1].Amount.Decimal())
	}
}
