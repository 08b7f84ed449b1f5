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

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the one-page watchlist summary" }
func (*dashboardCmd) Usage() string {
	return `flo dashboard

  Shows the watchlist on its most recent valuation date: net value,
  daily return, top exposures and per-ticker positions.
`
}

func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (p *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	dashboard, err := folio.NewDashboard(watchlist, market)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.DashboardMarkdown(dashboard))
	return subcommands.ExitSuccess
}
