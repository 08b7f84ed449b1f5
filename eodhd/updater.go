package eodhd

import (
	"fmt"
	"log"

	"github.com/openfolio/folio"
	"github.com/openfolio/folio/daily"
)

// defaultLookbackDays bounds the first fetch of a security with no
// price history yet. Free API subscriptions are limited to one year.
const defaultLookbackDays = 365

// Update fetches close prices for every security of the database and
// records them. For each security the fetch starts the day after its
// last known price, or defaultLookbackDays ago when it has none, and
// ends at the last trade day. Securities whose ticker is unknown to the
// vendor fail the whole update, partial prices are kept.
func (c *Client) Update(m *folio.MarketData) error {
	to := daily.LastTradeDay(daily.Today())

	for _, sec := range m.Securities() {
		from := to.Add(-defaultLookbackDays)
		if last, _ := m.Prices(sec.Ticker()).Latest(); !last.IsZero() {
			if !last.Before(to) {
				continue // already up to date
			}
			from = last.Add(1)
		}

		candles, err := c.EOD(sec.Ticker(), from, to)
		if err != nil {
			return fmt.Errorf("update failed for %q: %w", sec.Ticker(), err)
		}
		for _, candle := range candles {
			if candle.Close.IsZero() {
				continue
			}
			price := folio.M(candle.Close, sec.Currency())
			if err := m.SetPrice(sec.Ticker(), candle.Date, price); err != nil {
				return err
			}
		}
		log.Printf("update ticker=%q from=%s to=%s candles=%d", sec.Ticker(), from, to, len(candles))
	}
	return nil
}
