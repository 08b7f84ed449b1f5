package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
)

type addSecurityCmd struct {
	ticker   string
	name     string
	isin     string
	currency string
}

func (*addSecurityCmd) Name() string     { return "add-security" }
func (*addSecurityCmd) Synopsis() string { return "define a security in the market database" }
func (*addSecurityCmd) Usage() string {
	return `flo add-security -t <ticker> [-n <name>] [-isin <isin>] [-c <currency>]

  Defines a security so that the fetch command knows what prices to
  retrieve. The ticker uses the vendor format, e.g. "AAPL.US".

Usage Examples:
$ flo add-security -t AAPL.US -n "Apple Inc" -isin US0378331005 -c USD

`
}

func (p *addSecurityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ticker, "t", "", "Ticker of the security (required)")
	f.StringVar(&p.name, "n", "", "Human readable name")
	f.StringVar(&p.isin, "isin", "", "ISIN of the security, validated when present")
	f.StringVar(&p.currency, "c", "USD", "Currency the security is priced in")
}

func (p *addSecurityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sec, err := folio.NewSecurity(p.ticker, p.name, p.isin, p.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	market, err := DecodeMarketData()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := market.Add(sec); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodeMarketData(market); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Defined %s in %s\n", sec.Ticker(), *marketPath)
	return subcommands.ExitSuccess
}
