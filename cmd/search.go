package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dca"
	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for instruments on the price provider" }
func (*searchCmd) Usage() string {
	return `dcasim search <search term>

  Searches for instruments with the selected provider and prints
  ready-to-use 'dcasim simulate' arguments for the results.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	searchTerm := strings.Join(f.Args(), " ")

	provider, err := newProvider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	searcher, ok := provider.(dca.Searcher)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: provider %q does not support search\n", *providerName)
		return subcommands.ExitFailure
	}

	results, err := searcher.Search(ctx, searchTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching instruments: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", searchTerm)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), searchTerm)
	for _, item := range results {
		fmt.Printf("➡️   Name     : %s (%s)\n", item.Name, item.Symbol)
		fmt.Printf("    Exchange : %s, Type: %s\n", item.Exchange, item.Type)
		fmt.Printf("    $ %s\n\n", simulateCommand(item.Instrument()))
	}
	return subcommands.ExitSuccess
}

// simulateCommand returns the command line to simulate an instrument.
func simulateCommand(in dca.Instrument) string {
	return fmt.Sprintf("dcasim simulate %q", in.Name+"="+in.Symbol)
}
