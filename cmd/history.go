package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
	"github.com/openfolio/folio/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the daily valuation and return history" }
func (*historyCmd) Usage() string {
	return `flo history

  Values the watchlist against the market database and shows the
  portfolio market value and holding-period return, day by day.
`
}

func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (p *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	watchlist, err := DecodeWatchlist()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	market, err := DecodeMarketData()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	valuation, err := watchlist.Valuation(market)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	returns := folio.HPR(valuation, watchlist.Flows())
	printMarkdown(renderer.HistoryMarkdown(watchlist.Name(), valuation.NetSeries(), returns))
	return subcommands.ExitSuccess
}
