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

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "show the current position of every ticker" }
func (*positionsCmd) Usage() string {
	return `flo positions

  Replays the whole trade history and shows, per ticker, the net
  quantity, the average cost of the open lots and the realized P&L.
`
}

func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (p *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	watchlist, err := DecodeWatchlist()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	positions, err := watchlist.Positions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// no cap here, the positions command lists every ticker
	last := folio.LastPositions(positions, len(positions))
	printMarkdown(renderer.PositionsMarkdown(watchlist.Name(), last))
	return subcommands.ExitSuccess
}
