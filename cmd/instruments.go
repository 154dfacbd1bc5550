package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/dca"
	"github.com/google/subcommands"
)

type instrumentsCmd struct{}

func (*instrumentsCmd) Name() string     { return "instruments" }
func (*instrumentsCmd) Synopsis() string { return "list the predefined instruments" }
func (*instrumentsCmd) Usage() string {
	return `dcasim instruments

  Lists the predefined instruments. Those marked with '*' are simulated by
  default when 'dcasim simulate' is called without any instrument.
`
}

func (c *instrumentsCmd) SetFlags(f *flag.FlagSet) {}

func (c *instrumentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	defaults := dca.DefaultInstruments()
	for _, in := range dca.Predefined() {
		mark := " "
		if slices.Contains(defaults, in) {
			mark = "*"
		}
		fmt.Printf("%s %-22s %s\n", mark, in.Name, in.Symbol)
	}
	return subcommands.ExitSuccess
}
