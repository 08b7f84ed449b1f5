package folio

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openfolio/folio/daily"
)

// Side identifies the direction of a trade.
type Side int

const (
	// Buy adds to a long position or closes a short one.
	Buy Side = iota
	// Sell reduces a long position or opens a short one.
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade side: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Side) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	side, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// Trade is one buy or sell of a security, immutable once created.
// Quantity is an unsigned magnitude; the direction lives in Side.
// This is the canonical representation: signed quantities accepted at
// the boundary are normalized through NewSignedTrade.
type Trade struct {
	Ticker   string
	Side     Side
	Quantity Quantity // unsigned magnitude
	Price    Money    // positive per-unit price
	On       daily.Date
	Comment  string
}

// NewTrade returns a trade with an explicit side and unsigned magnitude.
// A zero date defaults to the last trade day (weekends roll back to Friday).
func NewTrade(on daily.Date, ticker string, side Side, quantity Quantity, price Money, comment string) Trade {
	if on.IsZero() {
		on = daily.LastTradeDay(daily.Today())
	}
	return Trade{
		Ticker:   ticker,
		Side:     side,
		Quantity: quantity.Abs(),
		Price:    price,
		On:       on,
		Comment:  comment,
	}
}

// NewSignedTrade normalizes the signed-quantity convention: a negative
// quantity is a sell, anything else a buy.
func NewSignedTrade(on daily.Date, ticker string, quantity Quantity, price Money, comment string) Trade {
	side := Buy
	if quantity.IsNegative() {
		side = Sell
	}
	return NewTrade(on, ticker, side, quantity, price, comment)
}

// Signed returns the trade quantity with its conventional sign:
// positive for buys, negative for sells.
func (t Trade) Signed() Quantity {
	if t.Side == Sell {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// CashFlow returns the net cash spent on this trade: positive for a buy
// (cash out of the pocket), negative for a sell (proceeds received).
func (t Trade) CashFlow() Money {
	return t.Price.Mul(t.Signed())
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", t.On, t.Side, t.Quantity, t.Ticker, t.Price)
}

// Sentinel errors for malformed trade histories. Both are programmer
// errors in the caller: the engine never recovers from them.
var (
	// ErrMixedTickers reports a trade history containing more than one ticker.
	ErrMixedTickers = errors.New("trade history contains multiple tickers")
	// ErrUnsortedTrades reports a trade history out of chronological order.
	ErrUnsortedTrades = errors.New("trade history is not in chronological order")
)

// TradeList is an ordered trade history for a single ticker.
type TradeList []Trade

// Validate checks the two preconditions of the matcher: one ticker,
// non-decreasing dates. An empty history is valid.
func (l TradeList) Validate() error {
	for i, t := range l {
		if t.Ticker != l[0].Ticker {
			return fmt.Errorf("%w: %q and %q", ErrMixedTickers, l[0].Ticker, t.Ticker)
		}
		if i > 0 && t.On.Before(l[i-1].On) {
			return fmt.Errorf("%w: %s before %s", ErrUnsortedTrades, t.On, l[i-1].On)
		}
	}
	return nil
}
