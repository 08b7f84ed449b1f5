package folio

import (
	"slices"
	"sort"

	"github.com/openfolio/folio/daily"
)

// Watchlist is a named collection of trades across several tickers,
// the unit of accounting of the whole engine: positions, valuations and
// returns are always computed for one watchlist at a time.
type Watchlist struct {
	name   string
	trades []Trade
}

// NewWatchlist returns a new empty watchlist.
func NewWatchlist(name string) *Watchlist {
	return &Watchlist{name: name}
}

func (w *Watchlist) Name() string { return w.name }

// Len returns the number of recorded trades.
func (w *Watchlist) Len() int { return len(w.trades) }

// Record appends a trade. Trades may arrive in any order; histories are
// re-sorted by date (stable, so same-day trades keep insertion order)
// when read back.
func (w *Watchlist) Record(trades ...Trade) {
	w.trades = append(w.trades, trades...)
}

// Trades returns all recorded trades sorted by date, same-day trades in
// insertion order.
func (w *Watchlist) Trades() []Trade {
	sorted := slices.Clone(w.trades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].On.Before(sorted[j].On) })
	return sorted
}

// Tickers returns the distinct traded tickers in sorted order.
func (w *Watchlist) Tickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, t := range w.trades {
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			tickers = append(tickers, t.Ticker)
		}
	}
	slices.Sort(tickers)
	return tickers
}

// History returns the chronological trade history of one ticker.
func (w *Watchlist) History(ticker string) TradeList {
	var history TradeList
	for _, t := range w.Trades() {
		if t.Ticker == ticker {
			history = append(history, t)
		}
	}
	return history
}

// Flows returns the watchlist's per-date net cash flows, buys positive.
func (w *Watchlist) Flows() FlowList {
	histories := make([]TradeList, 0)
	for _, ticker := range w.Tickers() {
		histories = append(histories, w.History(ticker))
	}
	return Flows(histories...)
}

// Positions runs the lot matcher on every ticker of the watchlist.
func (w *Watchlist) Positions() (map[string]Breakdown, error) {
	positions := make(map[string]Breakdown)
	for _, ticker := range w.Tickers() {
		breakdown, err := MatchFIFO(w.History(ticker))
		if err != nil {
			return nil, err
		}
		positions[ticker] = breakdown
	}
	return positions, nil
}

// Valuation values every position against the market database and
// combines them into the portfolio valuation table. Tickers with no
// price data contribute an empty column.
func (w *Watchlist) Valuation(market *MarketData) (*PortfolioValuation, error) {
	positions, err := w.Positions()
	if err != nil {
		return nil, err
	}
	perTicker := make(map[string]*ValuationSeries, len(positions))
	for ticker, breakdown := range positions {
		perTicker[ticker] = DailyValuation(breakdown, market.Prices(ticker))
	}
	return Combine(perTicker), nil
}

// Returns computes the watchlist's daily holding-period return series.
func (w *Watchlist) Returns(market *MarketData) (*daily.Series[Percent], error) {
	valuation, err := w.Valuation(market)
	if err != nil {
		return nil, err
	}
	return HPR(valuation, w.Flows()), nil
}
