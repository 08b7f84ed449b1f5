// Package cmd implements the CLI application to manage watchlists.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flag"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/openfolio/folio"
)

// Commands lists the subcommands in registration order. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&fmtCmd{},
	&addSecurityCmd{},
	&fetchCmd{},
	&positionsCmd{},
	&historyCmd{},
	&dashboardCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is
// ok to use global variables.

var tradesFile = flag.String("trades-file", "trades.jsonl", "Path to the watchlist file containing trades (JSONL format)")
var marketPath = flag.String("market-path", ".market", "Path to the market database folder")

// watchlistName derives the watchlist name from the trades file name.
func watchlistName() string {
	base := filepath.Base(*tradesFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DecodeWatchlist loads the app watchlist. A missing file yields an
// empty watchlist.
func DecodeWatchlist() (*folio.Watchlist, error) {
	f, err := os.Open(*tradesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return folio.NewWatchlist(watchlistName()), nil
		}
		return nil, fmt.Errorf("cannot open trades file %q: %w", *tradesFile, err)
	}
	defer f.Close()
	return folio.DecodeWatchlist(watchlistName(), f)
}

// DecodeMarketData loads the app market database from the market path.
func DecodeMarketData() (*folio.MarketData, error) {
	return folio.DecodeMarketData(*marketPath)
}

// EncodeMarketData persists the market database into the market path.
func EncodeMarketData(m *folio.MarketData) error {
	if err := os.MkdirAll(*marketPath, 0755); err != nil {
		return fmt.Errorf("cannot create market folder %q: %w", *marketPath, err)
	}
	return folio.EncodeMarketData(*marketPath, m)
}

// AppendTrade appends a single trade to the app trades file.
func AppendTrade(t folio.Trade) subcommands.ExitStatus {
	f, err := os.OpenFile(*tradesFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trades file %q: %v\n", *tradesFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeTrade(f, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to trades file %q: %v\n", *tradesFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s in %s\n", t, *tradesFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when the renderer fails (e.g. no TTY).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
