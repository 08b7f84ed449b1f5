package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
)

type sellCmd struct {
	tradeFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell trade in the watchlist" }
func (*sellCmd) Usage() string {
	return `flo sell -t <ticker> -q <quantity> -p <price> [-c <currency>] [-d <date>] [-comment <text>]

  Appends a sell trade to the trades file. Selling more than the open
  position opens a short position.

Usage Examples:
# Sell 4 Apple shares at 160 dollars each.
$ flo sell -t AAPL -q 4 -p 160

`
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := p.trade(folio.Sell)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return AppendTrade(t)
}
