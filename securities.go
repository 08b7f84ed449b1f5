package folio

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/openfolio/folio/daily"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// tickerRegex keeps tickers short and upper case, dots allowed for the
// exchange suffix vendors use ("AAPL.US").
var tickerRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,23}$`)

// Security describes one tradeable asset known to the market database.
type Security struct {
	ticker   string
	name     string
	isin     string
	currency string
}

// NewSecurity validates and builds a Security. The ISIN is optional;
// when present it must be a valid ISO 6166 identifier.
func NewSecurity(ticker, name, isin, currency string) (Security, error) {
	if !tickerRegex.MatchString(ticker) {
		return Security{}, fmt.Errorf("invalid ticker %q", ticker)
	}
	if isin != "" {
		if err := ValidateISIN(isin); err != nil {
			return Security{}, fmt.Errorf("invalid ISIN for %q: %w", ticker, err)
		}
	}
	return Security{ticker: ticker, name: name, isin: isin, currency: currency}, nil
}

func (s Security) Ticker() string   { return s.ticker }
func (s Security) Name() string     { return s.name }
func (s Security) ISIN() string     { return s.isin }
func (s Security) Currency() string { return s.currency }

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return errors.New("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// Convert letters to numbers for the check digit calculation.
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Variation of the Luhn algorithm.
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))
	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}
	return nil
}

// Sentinel errors of the market database.
var (
	// ErrDuplicateTicker reports an attempt to define a ticker twice.
	ErrDuplicateTicker = errors.New("ticker is already defined")
	// ErrUnknownTicker reports an operation on a ticker with no definition.
	ErrUnknownTicker = errors.New("ticker is not defined")
)

// MarketData holds security definitions and their daily close prices.
type MarketData struct {
	securities []Security // sorted by ticker
	index      map[string]int
	prices     map[string]*PriceSeries
}

// NewMarketData returns a new empty market database.
func NewMarketData() *MarketData {
	return &MarketData{
		index:  make(map[string]int),
		prices: make(map[string]*PriceSeries),
	}
}

// Has reports whether a ticker is defined.
func (m *MarketData) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

// Get returns the definition of a ticker.
func (m *MarketData) Get(ticker string) (Security, bool) {
	i, ok := m.index[ticker]
	if !ok {
		return Security{}, false
	}
	return m.securities[i], true
}

// Add defines a new security in the database.
func (m *MarketData) Add(sec Security) error {
	if m.Has(sec.ticker) {
		return fmt.Errorf("%w: %q", ErrDuplicateTicker, sec.ticker)
	}
	i, _ := slices.BinarySearchFunc(m.securities, sec, func(a, b Security) int {
		return strings.Compare(a.ticker, b.ticker)
	})
	m.securities = slices.Insert(m.securities, i, sec)
	// reindex the tail shifted by the insertion
	for j := i; j < len(m.securities); j++ {
		m.index[m.securities[j].ticker] = j
	}
	m.prices[sec.ticker] = new(PriceSeries)
	return nil
}

// Securities returns the definitions in sorted ticker order. The slice
// is a copy, safe to keep.
func (m *MarketData) Securities() []Security {
	return slices.Clone(m.securities)
}

// Tickers returns all defined tickers in sorted order.
func (m *MarketData) Tickers() []string {
	tickers := make([]string, len(m.securities))
	for i, sec := range m.securities {
		tickers[i] = sec.ticker
	}
	return tickers
}

// SetPrice records the close price of a ticker on a given day,
// overwriting any previous value for that day.
func (m *MarketData) SetPrice(ticker string, on daily.Date, price Money) error {
	series, ok := m.prices[ticker]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
	}
	series.Append(on, price)
	return nil
}

// Prices returns the close-price series of a ticker, empty (not nil)
// when the ticker has no prices or no definition.
func (m *MarketData) Prices(ticker string) *PriceSeries {
	if series, ok := m.prices[ticker]; ok {
		return series
	}
	return new(PriceSeries)
}

// PriceAsOf returns the close price of a ticker on a day, or the most
// recent one before it.
func (m *MarketData) PriceAsOf(ticker string, on daily.Date) (Money, bool) {
	return m.Prices(ticker).AsOf(on)
}
