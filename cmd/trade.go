package cmd

import (
	"flag"
	"fmt"

	"github.com/openfolio/folio"
	"github.com/openfolio/folio/daily"
	"github.com/shopspring/decimal"
)

// tradeFlags holds the flags shared by the buy and sell commands.
type tradeFlags struct {
	ticker   string
	quantity string
	price    string
	currency string
	date     string
	comment  string
}

func (p *tradeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ticker, "t", "", "Ticker of the traded security (required)")
	f.StringVar(&p.quantity, "q", "", "Number of units traded (required)")
	f.StringVar(&p.price, "p", "", "Price per unit (required)")
	f.StringVar(&p.currency, "c", "USD", "Currency of the price")
	f.StringVar(&p.date, "d", "", "Trade date, defaults to the last trade day")
	f.StringVar(&p.comment, "comment", "", "Free text comment attached to the trade")
}

// trade validates the flags and builds the trade.
func (p *tradeFlags) trade(side folio.Side) (folio.Trade, error) {
	if p.ticker == "" {
		return folio.Trade{}, fmt.Errorf("missing required flag -t")
	}
	quantity, err := decimal.NewFromString(p.quantity)
	if err != nil {
		return folio.Trade{}, fmt.Errorf("invalid quantity %q: %w", p.quantity, err)
	}
	price, err := decimal.NewFromString(p.price)
	if err != nil {
		return folio.Trade{}, fmt.Errorf("invalid price %q: %w", p.price, err)
	}
	if !price.IsPositive() {
		return folio.Trade{}, fmt.Errorf("price must be positive, got %q", p.price)
	}

	var on daily.Date
	if p.date != "" {
		on, err = daily.Parse(p.date)
		if err != nil {
			return folio.Trade{}, fmt.Errorf("invalid date %q: %w", p.date, err)
		}
	}
	return folio.NewTrade(on, p.ticker, side, folio.Q(quantity), folio.M(price, p.currency), p.comment), nil
}
