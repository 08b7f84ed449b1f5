// Package folio reconstructs open positions from watchlist trade
// histories and values them against daily close prices.
//
// The engine is organized as four small, pure calculators:
//
//   - MatchFIFO folds an ordered, single-ticker trade history into a
//     breakdown of position snapshots using first-in-first-out lot
//     matching, tracking realized profit and loss through direction
//     reversals.
//   - DailyValuation joins a breakdown against a daily close-price
//     series, forward-filling the position over price dates, to produce
//     a per-ticker market-value series.
//   - Combine outer-joins per-ticker valuation series into a portfolio
//     valuation table and derives its summary views (top exposures,
//     bar exposures, last positions).
//   - HPR turns trade cash flows into an external-flow series and
//     computes the portfolio's daily Holding Period Return, so that
//     contributions and withdrawals are not mistaken for performance.
//
// No calculator performs I/O or retains state across calls; all of them
// are safe to invoke concurrently for different tickers or watchlists.
// Loading trades and prices, and fetching quotes from providers, live at
// the boundary (see the encode helpers and the eodhd package).
package folio
