package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the trades file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `flo fmt

  Reads all trades, validates them, sorts them by date and writes them
  back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	watchlist, err := DecodeWatchlist()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// validating by replaying the matcher on every ticker
	if _, err := watchlist.Positions(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*tradesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trades file %q: %v\n", *tradesFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := folio.EncodeWatchlist(out, watchlist); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d trades in %s\n", watchlist.Len(), *tradesFile)
	return subcommands.ExitSuccess
}
