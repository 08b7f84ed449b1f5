package folio

import (
	"errors"
	"testing"

	"github.com/openfolio/folio/daily"
)

func buy(on string, q, price float64) Trade {
	return NewTrade(daily.MustParse(on), "AAPL", Buy, Q(q), M(price, "USD"), "")
}

func sell(on string, q, price float64) Trade {
	return NewTrade(daily.MustParse(on), "AAPL", Sell, Q(q), M(price, "USD"), "")
}

// assertSnapshot compares the numeric content of a snapshot.
func assertSnapshot(t *testing.T, got PositionSnapshot, net, avg, realized float64) {
	t.Helper()
	if !got.NetQuantity.Equal(Q(net)) {
		t.Errorf("net quantity = %s, want %v", got.NetQuantity, net)
	}
	if !got.AverageCost.Decimal().Equal(newDecimal(avg)) {
		t.Errorf("average cost = %s, want %v", got.AverageCost.Decimal(), avg)
	}
	if !got.RealizedPNL.Decimal().Equal(newDecimal(realized)) {
		t.Errorf("realized pnl = %s, want %v", got.RealizedPNL.Decimal(), realized)
	}
}

func TestMatchFIFOEmptyHistory(t *testing.T) {
	breakdown, err := MatchFIFO(nil)
	if err != nil {
		t.Fatalf("MatchFIFO(nil): %v", err)
	}
	if len(breakdown) != 0 {
		t.Errorf("breakdown has %d snapshots, want 0", len(breakdown))
	}
	if got := breakdown.Latest(); !got.NetQuantity.IsZero() {
		t.Errorf("Latest() of empty breakdown = %+v, want zero snapshot", got)
	}
}

func TestMatchFIFOOneSnapshotPerTrade(t *testing.T) {
	history := TradeList{
		buy("2025-01-02", 10, 150),
		buy("2025-01-03", 5, 155),
		sell("2025-01-06", 8, 160),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	if len(breakdown) != len(history) {
		t.Fatalf("breakdown has %d snapshots, want %d", len(breakdown), len(history))
	}
	for i, snap := range breakdown {
		if snap.On != history[i].On {
			t.Errorf("snapshot %d on %s, want %s", i, snap.On, history[i].On)
		}
	}
}

// Oldest lots are consumed first. Selling 12 against lots of 10@100 and
// 5@110 fully consumes the first lot and 2 units of the second:
// realized = 10*(120-100) + 2*(120-110) = 220, leaving 3@110 open.
func TestMatchFIFOConsumesOldestFirst(t *testing.T) {
	history := TradeList{
		buy("2025-03-03", 10, 100),
		buy("2025-03-04", 5, 110),
		sell("2025-03-05", 12, 120),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	assertSnapshot(t, breakdown[0], 10, 100, 0)
	assertSnapshot(t, breakdown[1], 15, 103.3333, 0) // (10*100+5*110)/15 rounded
	assertSnapshot(t, breakdown[2], 3, 110, 220)
}

// A sell larger than the open long flips the position: the overshoot
// becomes the first short lot, priced at the reversing trade.
func TestMatchFIFODirectionReversal(t *testing.T) {
	history := TradeList{
		buy("2025-04-01", 10, 100),
		sell("2025-04-02", 15, 110),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	assertSnapshot(t, breakdown[1], -5, 110, 100) // realized 10*(110-100)
}

// Short first, then cover: realized gain is still sell minus buy.
func TestMatchFIFOShortThenCover(t *testing.T) {
	history := TradeList{
		sell("2025-05-01", 10, 120),
		buy("2025-05-02", 4, 100),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	assertSnapshot(t, breakdown[0], -10, 120, 0)
	assertSnapshot(t, breakdown[1], -6, 120, 80) // 4*(120-100)
}

func TestMatchFIFOSameDirectionNeverRealizes(t *testing.T) {
	history := TradeList{
		buy("2025-06-02", 10, 100),
		buy("2025-06-03", 5, 120),
		buy("2025-06-04", 1, 90),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	for i, snap := range breakdown {
		if !snap.RealizedPNL.IsZero() {
			t.Errorf("snapshot %d realized %s, want 0", i, snap.RealizedPNL)
		}
	}
	assertSnapshot(t, breakdown.Latest(), 16, 102.5, 0) // (1000+600+90)/16
}

// Closing the whole position brings the average cost back to 0.
func TestMatchFIFOFlatAfterFullClose(t *testing.T) {
	history := TradeList{
		buy("2025-07-01", 10, 100),
		sell("2025-07-02", 10, 130),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	last := breakdown.Latest()
	if !last.NetQuantity.IsZero() {
		t.Errorf("net quantity = %s, want 0", last.NetQuantity)
	}
	if !last.AverageCost.IsZero() {
		t.Errorf("average cost = %s, want 0", last.AverageCost.Decimal())
	}
	if !last.RealizedPNL.Decimal().Equal(newDecimal(300)) {
		t.Errorf("realized pnl = %s, want 300", last.RealizedPNL.Decimal())
	}
}

// A zero-quantity trade changes nothing but still yields a snapshot.
func TestMatchFIFOZeroQuantityTrade(t *testing.T) {
	history := TradeList{
		buy("2025-08-01", 10, 100),
		buy("2025-08-04", 0, 999),
		sell("2025-08-05", 10, 110),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	if len(breakdown) != 3 {
		t.Fatalf("breakdown has %d snapshots, want 3", len(breakdown))
	}
	assertSnapshot(t, breakdown[1], 10, 100, 0)
	assertSnapshot(t, breakdown[2], 0, 0, 100)
}

func TestMatchFIFOFractionalQuantities(t *testing.T) {
	history := TradeList{
		buy("2025-09-01", 2.5, 40),
		sell("2025-09-02", 1.5, 44),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	assertSnapshot(t, breakdown.Latest(), 1, 40, 6) // 1.5*(44-40)
}

func TestMatchFIFORejectsMalformedHistories(t *testing.T) {
	msft := NewTrade(daily.MustParse("2025-01-03"), "MSFT", Buy, Q(1), M(400, "USD"), "")
	tests := []struct {
		name    string
		history TradeList
		want    error
	}{
		{"mixed tickers", TradeList{buy("2025-01-02", 1, 150), msft}, ErrMixedTickers},
		{"unsorted dates", TradeList{buy("2025-01-03", 1, 150), buy("2025-01-02", 1, 150)}, ErrUnsortedTrades},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MatchFIFO(tt.history)
			if !errors.Is(err, tt.want) {
				t.Errorf("MatchFIFO error = %v, want %v", err, tt.want)
			}
		})
	}
}

// End to end: partial close then re-open. The re-opening buy blends
// with the surviving lot into a weighted average of 6@150 + 6@155.
func TestMatchFIFOCloseThenReopen(t *testing.T) {
	history := TradeList{
		buy("2024-01-02", 10, 150),
		sell("2024-01-03", 4, 160),
		buy("2024-01-04", 6, 155),
	}
	breakdown, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	assertSnapshot(t, breakdown[0], 10, 150, 0)
	assertSnapshot(t, breakdown[1], 6, 150, 40) // 4*(160-150)
	assertSnapshot(t, breakdown[2], 12, 152.5, 40)
}

// Matching is a pure fold: the same history always yields the same
// breakdown, and the input is left untouched.
func TestMatchFIFOIsPure(t *testing.T) {
	history := TradeList{
		buy("2025-01-02", 10, 100),
		sell("2025-01-03", 15, 110),
		buy("2025-01-06", 5, 105),
	}
	first, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	second, err := MatchFIFO(history)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("breakdown lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.On != b.On || !a.NetQuantity.Equal(b.NetQuantity) ||
			!a.AverageCost.Equal(b.AverageCost) || !a.RealizedPNL.Equal(b.RealizedPNL) {
			t.Errorf("snapshot %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}
