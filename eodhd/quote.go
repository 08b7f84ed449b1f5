package eodhd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// LatestPrice returns the most recent traded price of a ticker from the
// real-time endpoint. Outside trading hours the API reports "NA" for
// the close, in which case the previous close is used instead.
func (c *Client) LatestPrice(ticker string) (decimal.Decimal, error) {
	var jobj any
	if err := c.get("real-time/"+ticker, url.Values{}, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch quote for %q: %w", ticker, err)
	}

	for _, path := range []string{"$.close", "$.previousClose"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of
		// one answer or a single answer, keep the first one if any.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if price, ok := asPrice(jval); ok {
			return price, nil
		}
	}
	return decimal.Zero, fmt.Errorf("quote for %q has no usable close value", ticker)
}

// asPrice coerces the API value to a positive decimal. The API
// sometimes returns numbers as strings, with comma decimals.
func asPrice(jval any) (decimal.Decimal, bool) {
	switch v := jval.(type) {
	case float64:
		if v > 0 {
			return decimal.NewFromFloat(v), true
		}
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
			return decimal.NewFromFloat(f), true
		}
	}
	return decimal.Zero, false
}
