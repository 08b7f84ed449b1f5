package folio

import (
	"testing"

	"github.com/openfolio/folio/daily"
)

func priceSeries(t *testing.T, points map[string]float64) *PriceSeries {
	t.Helper()
	s := new(PriceSeries)
	for on, p := range points {
		s.Append(daily.MustParse(on), M(p, "USD"))
	}
	return s
}

func assertValue(t *testing.T, s *ValuationSeries, on string, want float64) {
	t.Helper()
	got, ok := s.Get(daily.MustParse(on))
	if !ok {
		t.Fatalf("no value on %s", on)
	}
	if !got.Decimal().Equal(newDecimal(want)) {
		t.Errorf("value on %s = %s, want %v", on, got.Decimal(), want)
	}
}

func TestDailyValuationForwardFillsPosition(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{buy("2025-01-02", 10, 100)})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{
		"2025-01-02": 100,
		"2025-01-03": 102,
		"2025-01-06": 98.5,
	})

	valuation := DailyValuation(breakdown, prices)
	if valuation.Len() != 3 {
		t.Fatalf("valuation has %d points, want 3", valuation.Len())
	}
	// the 10-share position carries across price dates with no trades
	assertValue(t, valuation, "2025-01-02", 1000)
	assertValue(t, valuation, "2025-01-03", 1020)
	assertValue(t, valuation, "2025-01-06", 985)
}

func TestDailyValuationStartsAtFirstTrade(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{buy("2025-01-06", 4, 50)})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{
		"2025-01-02": 48, // before the position existed
		"2025-01-06": 50,
		"2025-01-07": 52,
	})

	valuation := DailyValuation(breakdown, prices)
	if valuation.Len() != 2 {
		t.Fatalf("valuation has %d points, want 2", valuation.Len())
	}
	if _, ok := valuation.Get(daily.MustParse("2025-01-02")); ok {
		t.Error("valuation exists before the first trade")
	}
	assertValue(t, valuation, "2025-01-07", 208)
}

func TestDailyValuationReflectsPositionChanges(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{
		buy("2025-02-03", 10, 100),
		sell("2025-02-05", 6, 110),
	})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{
		"2025-02-03": 100,
		"2025-02-04": 105,
		"2025-02-05": 110,
		"2025-02-06": 112,
	})

	valuation := DailyValuation(breakdown, prices)
	assertValue(t, valuation, "2025-02-04", 1050) // 10 shares
	assertValue(t, valuation, "2025-02-05", 440)  // 4 shares after the sell
	assertValue(t, valuation, "2025-02-06", 448)
}

func TestDailyValuationShortPositionIsNegative(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{sell("2025-03-03", 5, 80)})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{"2025-03-04": 90})

	valuation := DailyValuation(breakdown, prices)
	assertValue(t, valuation, "2025-03-04", -450)
}

func TestDailyValuationEmptyInputs(t *testing.T) {
	prices := priceSeries(t, map[string]float64{"2025-01-02": 100})
	if got := DailyValuation(Breakdown{}, prices); got.Len() != 0 {
		t.Errorf("valuation of empty breakdown has %d points, want 0", got.Len())
	}
	breakdown, _ := MatchFIFO(TradeList{buy("2025-01-02", 1, 100)})
	if got := DailyValuation(breakdown, new(PriceSeries)); got.Len() != 0 {
		t.Errorf("valuation against empty prices has %d points, want 0", got.Len())
	}
}

func TestUnrealizedReturns(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{buy("2025-04-01", 10, 100)})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{
		"2025-04-01": 100,
		"2025-04-02": 105,
		"2025-04-03": 95,
	})

	returns := UnrealizedReturns(breakdown, prices)
	tests := []struct {
		on   string
		want Percent
	}{
		{"2025-04-01", 0},
		{"2025-04-02", 5},
		{"2025-04-03", -5},
	}
	for _, tt := range tests {
		got, ok := returns.Get(daily.MustParse(tt.on))
		if !ok {
			t.Fatalf("no return on %s", tt.on)
		}
		if !got.Equal(tt.want) {
			t.Errorf("return on %s = %s, want %s", tt.on, got, tt.want)
		}
	}
}

// A short position gains when the price drops below the average cost.
func TestUnrealizedReturnsShort(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{sell("2025-05-01", 10, 100)})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{"2025-05-02": 90})

	returns := UnrealizedReturns(breakdown, prices)
	got, ok := returns.Get(daily.MustParse("2025-05-02"))
	if !ok {
		t.Fatal("no return on 2025-05-02")
	}
	if !got.Equal(Percent(10)) {
		t.Errorf("short return = %s, want 10.00%%", got)
	}
}

// Flat days have no average cost to measure against and are skipped.
func TestUnrealizedReturnsSkipsFlatDays(t *testing.T) {
	breakdown, err := MatchFIFO(TradeList{
		buy("2025-06-02", 10, 100),
		sell("2025-06-03", 10, 110),
	})
	if err != nil {
		t.Fatal(err)
	}
	prices := priceSeries(t, map[string]float64{
		"2025-06-02": 100,
		"2025-06-03": 110,
		"2025-06-04": 120,
	})

	returns := UnrealizedReturns(breakdown, prices)
	if returns.Len() != 1 {
		t.Fatalf("returns has %d points, want 1", returns.Len())
	}
	if _, ok := returns.Get(daily.MustParse("2025-06-04")); ok {
		t.Error("return exists on a flat day")
	}
}
