package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/openfolio/folio/daily"
	"github.com/shopspring/decimal"
)

// This file persists watchlists and market data as JSONL, human-readable
// and git-friendly so the data can live on a private repo.
//
// A watchlist is one file, one trade per line, appended as trades happen
// and canonicalized (sorted, reformatted) on demand.
//
// Market data is a folder: a definition file listing the securities, and
// one prices file per year where each line carries all the close prices
// of one day.

const attrOn = "on"
const marketDataFilesGlob = "[0-9][0-9][0-9][0-9].jsonl"
const definitionFilename = "definition.jsonl"

// MarshalJSON implements the json.Marshaler interface with a stable
// field order, so that persisted lines diff cleanly.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append(attrOn, t.On)
	w.Append("ticker", t.Ticker)
	w.Append("side", t.Side)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Decimal())
	w.Optional("currency", t.Price.Currency())
	w.Optional("comment", t.Comment)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Trade) UnmarshalJSON(b []byte) error {
	var jt struct {
		On       daily.Date      `json:"on"`
		Ticker   string          `json:"ticker"`
		Side     Side            `json:"side"`
		Quantity decimal.Decimal `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Currency string          `json:"currency"`
		Comment  string          `json:"comment"`
	}
	if err := json.Unmarshal(b, &jt); err != nil {
		return err
	}
	*t = NewTrade(jt.On, jt.Ticker, jt.Side, Q(jt.Quantity), M(jt.Price, jt.Currency), jt.Comment)
	return nil
}

// EncodeTrade marshals a single trade and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeTrade(w io.Writer, t Trade) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("cannot marshal trade: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write trade: %w", err)
	}
	return nil
}

// EncodeWatchlist persists a watchlist in canonical JSONL form: sorted
// by date, same-day trades in insertion order.
func EncodeWatchlist(w io.Writer, watchlist *Watchlist) error {
	for _, t := range watchlist.Trades() {
		if err := EncodeTrade(w, t); err != nil {
			return err
		}
	}
	return nil
}

// DecodeWatchlist reads a JSONL stream of trades into a watchlist.
// Empty lines are skipped.
func DecodeWatchlist(name string, r io.Reader) (*Watchlist, error) {
	watchlist := NewWatchlist(name)
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var t Trade
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, string(line), err)
		}
		watchlist.Record(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading trades: %w", err)
	}
	return watchlist, nil
}

// decodeDefinition parses the securities definition stream.
// filename is for error messages only.
func (m *MarketData) decodeDefinition(filename string, r io.Reader) error {
	// jsecurity is the object read from the file using json parser.
	type jsecurity struct {
		Ticker   string `json:"ticker"`
		Name     string `json:"name,omitempty"`
		ISIN     string `json:"isin,omitempty"`
		Currency string `json:"currency"`
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var js jsecurity
		if err := json.Unmarshal(line, &js); err != nil {
			return fmt.Errorf("format error in %q on line %q: %w", filename, string(line), err)
		}

		sec, err := NewSecurity(js.Ticker, js.Name, js.ISIN, js.Currency)
		if err != nil {
			return fmt.Errorf("format error in %q: %w", filename, err)
		}
		if err := m.Add(sec); err != nil {
			return fmt.Errorf("format error in %q: %w", filename, err)
		}
	}
	return scanner.Err()
}

// fileLine structures a line from a collection of files as the
// persistence layer represents them.
type fileLine struct {
	filename string
	i        int
	txt      string
}

// loadLines reads all lines from a set of files into structured lines.
func loadLines(filenames ...string) (list []fileLine, err error) {
	for _, filename := range filenames {
		r, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open %q for reading: %w", filename, err)
		}
		i := 0
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			i++
			list = append(list, fileLine{filename, i, scanner.Text()})
		}
		err = scanner.Err()
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", filename, err)
		}
	}
	return list, nil
}

// decodeDailyPrices decodes one prices line: a date under the "on" key,
// every other key a (ticker, price) pair.
func (m *MarketData) decodeDailyPrices(l fileLine) error {
	if strings.TrimSpace(l.txt) == "" {
		return nil
	}

	jobj := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(l.txt), &jobj); err != nil {
		return fmt.Errorf("parse error %s:%d: not a correct json: %w", l.filename, l.i, err)
	}

	jon, ok := jobj[attrOn]
	if !ok {
		return fmt.Errorf("parse error %s:%d: missing the property %q with a date", l.filename, l.i, attrOn)
	}
	var on daily.Date
	if err := json.Unmarshal(jon, &on); err != nil {
		return fmt.Errorf("parse error %s:%d: property %q must be a valid date: %w", l.filename, l.i, attrOn, err)
	}

	for ticker, jprice := range jobj {
		if ticker == attrOn {
			continue
		}
		var price decimal.Decimal
		if err := json.Unmarshal(jprice, &price); err != nil {
			return fmt.Errorf("parse error %s:%d: property %q must be a number: %w", l.filename, l.i, ticker, err)
		}
		sec, exists := m.Get(ticker)
		if !exists {
			return fmt.Errorf("parse error %s:%d: property %q must be an existing ticker", l.filename, l.i, ticker)
		}
		if err := m.SetPrice(ticker, on, M(price, sec.Currency())); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMarketData reads a folder containing the securities definition
// and the yearly prices files. A missing folder yields an empty
// database, not an error.
func DecodeMarketData(folder string) (*MarketData, error) {
	m := NewMarketData()

	definitionFile := filepath.Join(folder, definitionFilename)
	f, err := os.Open(definitionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("load error: cannot open market definition file %q: %w", definitionFile, err)
	}
	defer f.Close()

	if err := m.decodeDefinition(definitionFile, f); err != nil {
		return nil, fmt.Errorf("load error: cannot read market definition file: %w", err)
	}

	filenames, err := filepath.Glob(filepath.Join(folder, marketDataFilesGlob))
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan folder %q for market data files: %w", folder, err)
	}
	lines, err := loadLines(filenames...)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err := m.decodeDailyPrices(line); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// encodeDefinition encodes the securities definition into a jsonl stream.
func encodeDefinition(w io.Writer, m *MarketData) error {
	type jsecurity struct {
		Ticker   string `json:"ticker"`
		Name     string `json:"name,omitempty"`
		ISIN     string `json:"isin,omitempty"`
		Currency string `json:"currency"`
	}

	// m.Securities is already sorted by ticker, output is stable.
	for _, sec := range m.Securities() {
		js := jsecurity{
			Ticker:   sec.Ticker(),
			Name:     sec.Name(),
			ISIN:     sec.ISIN(),
			Currency: sec.Currency(),
		}
		data, err := json.Marshal(js)
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal security %q: %w", sec.Ticker(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("persist error: cannot write to file: %w", err)
		}
	}
	return nil
}

// encodeDailyPrices persists a single line of a yearly prices file.
// Returns bare io errors.
func encodeDailyPrices(w io.Writer, day daily.Date, tickers []string, prices []Money) error {
	// json encoder cannot be used directly as map order is not guaranteed.
	var jw jsonObjectWriter
	jw.Append(attrOn, day)
	for i, ticker := range tickers {
		jw.Append(ticker, prices[i].Decimal())
	}
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// EncodeMarketData encodes the market database into a folder, creating
// the definition file and one prices file per year. Yearly files no
// longer backed by any price are deleted.
func EncodeMarketData(folder string, m *MarketData) error {
	type line struct {
		filename string
		day      daily.Date
		tickers  []string
		prices   []Money
	}
	var lines []line

	definitionFile := filepath.Join(folder, definitionFilename)
	f, err := os.Create(definitionFile)
	if err != nil {
		return fmt.Errorf("persist error: cannot create file %q: %w", definitionFile, err)
	}
	defer f.Close()
	log.Printf("create-market-definition-file name=%q", definitionFile)

	if err := encodeDefinition(f, m); err != nil {
		return err
	}

	// Scan the database day by day and fill the structured lines.
	tickers := m.Tickers()
	allDates := make([][]daily.Date, 0, len(tickers))
	for _, ticker := range tickers {
		allDates = append(allDates, m.Prices(ticker).Dates())
	}
	for day := range daily.Union(allDates...) {
		l := line{
			day:      day,
			filename: filepath.Join(folder, fmt.Sprintf("%d.jsonl", day.Year())),
		}
		for _, ticker := range tickers {
			if price, ok := m.Prices(ticker).Get(day); ok {
				l.tickers = append(l.tickers, ticker)
				l.prices = append(l.prices, price)
			}
		}
		lines = append(lines, l)
	}

	// Persist all lines into their yearly files.
	var currentFile *os.File
	var currentFilename string
	createdFiles := make(map[string]struct{})
	for _, l := range lines {
		if currentFilename != l.filename {
			currentFilename = l.filename
			var err error
			currentFile, err = os.Create(currentFilename)
			if err != nil {
				return fmt.Errorf("persist error: cannot create file %q: %w", currentFilename, err)
			}
			createdFiles[currentFilename] = struct{}{}
			defer currentFile.Close()
			log.Printf("create-market-data-file name=%q", currentFilename)
		}
		if err := encodeDailyPrices(currentFile, l.day, l.tickers, l.prices); err != nil {
			return fmt.Errorf("persist error: write error on file %q: %w", currentFilename, err)
		}
	}

	// Delete extraneous yearly files.
	filenames, err := filepath.Glob(filepath.Join(folder, marketDataFilesGlob))
	if err != nil {
		return fmt.Errorf("persist error: cannot scan folder %q for market data files to be deleted: %w", folder, err)
	}
	for _, filename := range filenames {
		if _, ok := createdFiles[filename]; ok {
			continue
		}
		if err := os.Remove(filename); err != nil {
			return fmt.Errorf("persist error: cannot delete file %q: %w", filename, err)
		}
		log.Printf("delete-market-data-file name=%q", filename)
	}
	return nil
}
