package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio/eodhd"
)

type fetchCmd struct {
	apiKey string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch close prices for all defined securities" }
func (*fetchCmd) Usage() string {
	return `flo fetch [-api-key <key>]

  Fetches missing daily close prices from EODHD for every security of
  the market database, and persists them. The API key defaults to the
  EODHD_API_KEY environment variable.
`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.apiKey, "api-key", os.Getenv("EODHD_API_KEY"), "EODHD API key")
}

func (p *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing API key: set EODHD_API_KEY or pass -api-key")
		return subcommands.ExitUsageError
	}

	market, err := DecodeMarketData()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(market.Tickers()) == 0 {
		fmt.Fprintln(os.Stderr, "no security defined, use add-security first")
		return subcommands.ExitSuccess
	}

	if err := eodhd.New(p.apiKey).Update(market); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodeMarketData(market); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated prices for %d securities in %s\n", len(market.Tickers()), *marketPath)
	return subcommands.ExitSuccess
}
