package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
)

type buyCmd struct {
	tradeFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy trade in the watchlist" }
func (*buyCmd) Usage() string {
	return `flo buy -t <ticker> -q <quantity> -p <price> [-c <currency>] [-d <date>] [-comment <text>]

  Appends a buy trade to the trades file.

Usage Examples:
# Buy 10 Apple shares at 150 dollars each.
$ flo buy -t AAPL -q 10 -p 150

`
}

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := p.trade(folio.Buy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return AppendTrade(t)
}
