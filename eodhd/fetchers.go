package eodhd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/openfolio/folio/daily"
	"github.com/shopspring/decimal"
)

// Candle is one day of trading for a ticker.
//
//	{
//		"date": "2024-02-13",
//		"open": 675.066,
//		"high": 684.219,
//		"low": 648.659,
//		"close": 668.445,
//		"adjusted_close": 67.705,
//		"volume": 0
//	}
type Candle struct {
	Date  daily.Date      `json:"date"`
	Open  decimal.Decimal `json:"open"`
	Close decimal.Decimal `json:"close"`
}

// EOD returns the daily candles of a ticker over a date range, bounds
// included. The ticker uses the vendor format "SYMBOL.EXCHANGECODE",
// e.g. "AAPL.US". Zero bounds are omitted and the API applies its own
// defaults.
func (c *Client) EOD(ticker string, from, to daily.Date) ([]Candle, error) {
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.String())
	}
	if !to.IsZero() {
		query.Set("to", to.String())
	}

	candles := make([]Candle, 0)
	if err := c.get("eod/"+ticker, query, &candles); err != nil {
		return nil, fmt.Errorf("cannot fetch candles for %q: %w", ticker, err)
	}
	return candles, nil
}

// SymbolInfo holds information about a ticker on an exchange.
type SymbolInfo struct {
	Code     string `json:"Code"`
	Name     string `json:"Name"`
	Country  string `json:"Country"`
	Exchange string `json:"Exchange"`
	Currency string `json:"Currency"`
	Type     string `json:"Type"`
	Isin     string `json:"Isin"`
}

// Symbols retrieves the list of all tickers for a given exchange code.
func (c *Client) Symbols(exchange string, delisted bool) ([]SymbolInfo, error) {
	query := url.Values{}
	if delisted {
		query.Set("delisted", "1")
	}

	var symbols []SymbolInfo
	if err := c.get("exchange-symbol-list/"+exchange, query, &symbols); err != nil {
		return nil, fmt.Errorf("cannot fetch symbols for exchange %q: %w", exchange, err)
	}
	return symbols, nil
}

// Exchanges returns a map of MIC to EODHD's internal exchange code.
// This is required since EODHD uses its own ids for exchange places.
func (c *Client) Exchanges() (map[string]string, error) {
	// the response is a list of exchanges, each with a Code and
	// OperatingMIC, possibly a comma separated list of MICs.
	type info struct {
		Code         string `json:"Code"`
		OperatingMIC string `json:"OperatingMIC"`
	}

	content := make([]info, 0)
	if err := c.get("exchanges-list/", nil, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch exchange list: %w", err)
	}
	result := make(map[string]string)
	for _, i := range content {
		for _, mic := range strings.Split(i.OperatingMIC, ",") {
			result[strings.TrimSpace(mic)] = i.Code
		}
	}
	return result, nil
}

// FindTicker searches an exchange listing for a security by ISIN and
// returns its vendor ticker "CODE.EXCHANGE". Delisted securities are
// searched as a fallback.
func (c *Client) FindTicker(isin, exchange string) (string, error) {
	for _, delisted := range []bool{false, true} {
		symbols, err := c.Symbols(exchange, delisted)
		if err != nil {
			return "", err
		}
		for _, s := range symbols {
			if s.Isin == isin {
				// s.Exchange holds the physical exchange (e.g. NASDAQ)
				// but price queries want the vendor exchange code.
				return s.Code + "." + exchange, nil
			}
		}
	}
	return "", fmt.Errorf("isin %s is not listed on exchange %s", isin, exchange)
}
