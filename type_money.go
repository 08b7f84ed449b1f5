package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value: an exact decimal amount expressed in
// major units, plus a currency code used for display. The engine never
// converts between currencies; all values fed to one computation are
// assumed to share one consistent unit.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from any numeric type and a currency code.
// An empty currency is valid and combines weakly with any other.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency resolves the full go-money currency, defaulting gracefully
// when the code is empty or unknown.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with its currency symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	shifted := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

// SignedString is like String with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string        { return m.cur }
func (m Money) Equal(n Money) bool      { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsPositive() bool        { return m.value.IsPositive() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool   { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money              { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money              { return Money{value: m.value.Abs(), cur: m.cur} }

// Sign returns -1, 0 or +1.
func (m Money) Sign() int { return m.value.Sign() }

// Mul scales the amount by a quantity (e.g. price × position size).
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Div divides the amount by a quantity (e.g. value ÷ open lots).
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

// Round returns the amount rounded half-up to the given number of places.
func (m Money) Round(places int32) Money {
	return Money{value: m.value.Round(places), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// Decimal returns the exact amount in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

// AsFloat returns the amount as a float64, for display-side math only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }
