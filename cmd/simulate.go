package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/etnz/dca"
	"github.com/etnz/dca/insight"
	"github.com/etnz/dca/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

type simulateCmd struct {
	from     string
	to       string
	amount   string
	period   string
	currency string
	align    bool
	raw      bool
	json     bool
	explain  bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate investing a fixed amount every period" }
func (*simulateCmd) Usage() string {
	return `dcasim simulate [-from <date>] [-to <date>] [-amount <amount>] [-period <period>] [<name>=<symbol>|<symbol>...]

  Simulates investing the same amount at the first trading day of every
  period in each instrument, and compares the resulting portfolio values.

  Instruments are given as "Name=SYMBOL" or just "SYMBOL". Without any, the
  default selection is used (see 'dcasim instruments').

  Dates can be absolute (2020-01-01) or relative to today (-5y, -6m, -2w).

  Dividends, fees and taxes are not included.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	def := dca.DefaultConfig()
	f.StringVar(&c.from, "from", def.From.String(), "Start date of the simulation.")
	f.StringVar(&c.to, "to", "0d", "End date of the simulation, defaults to today.")
	f.StringVar(&c.amount, "amount", def.Contribution.String(), "Amount invested every period.")
	f.StringVar(&c.period, "period", def.Period.String(), "Contribution period: daily, weekly, monthly, quarterly or yearly.")
	f.StringVar(&c.currency, "currency", def.Currency, "Currency of the amount, used for display only.")
	f.BoolVar(&c.align, "align", false, "Label purchases with the first day of their period instead of their trading day.")
	f.BoolVar(&c.raw, "raw", false, "Also print the raw data table.")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON.")
	f.BoolVar(&c.explain, "explain", false, "Ask Gemini to comment on the report. Requires the GEMINI_API_KEY environment variable.")
}

// config returns the simulation configuration from the flags and the instrument arguments.
func (c *simulateCmd) config(args []string) (dca.Config, error) {
	cfg := dca.DefaultConfig()
	var err error
	if cfg.From, err = dca.ParseDate(c.from); err != nil {
		return cfg, fmt.Errorf("%w: start date: %w", dca.ErrInvalidConfiguration, err)
	}
	if cfg.To, err = dca.ParseDate(c.to); err != nil {
		return cfg, fmt.Errorf("%w: end date: %w", dca.ErrInvalidConfiguration, err)
	}
	if cfg.Contribution, err = decimal.NewFromString(c.amount); err != nil {
		return cfg, fmt.Errorf("%w: amount %q: %w", dca.ErrInvalidConfiguration, c.amount, err)
	}
	if cfg.Period, err = dca.ParsePeriod(c.period); err != nil {
		return cfg, fmt.Errorf("%w: %w", dca.ErrInvalidConfiguration, err)
	}
	cfg.Currency = strings.ToUpper(c.currency)
	cfg.AlignToPeriodStart = c.align

	if len(args) > 0 {
		cfg.Instruments = nil
		for _, arg := range args {
			in, err := dca.ParseInstrument(arg)
			if err != nil {
				return cfg, fmt.Errorf("%w: %w", dca.ErrInvalidConfiguration, err)
			}
			cfg.Instruments = append(cfg.Instruments, in)
		}
		cfg.Instruments = cfg.Instruments.Unique()
	}
	return cfg, nil
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.config(f.Args())
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	provider, err := newProvider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := dca.Run(ctx, cfg, provider)
	if report != nil {
		for _, w := range report.Warnings {
			log.Println("warning:", w)
		}
	}
	if errors.Is(err, dca.ErrNoUsableData) {
		fmt.Fprintln(os.Stderr, "Error: could not calculate portfolio values:", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running the simulation: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding the report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	md := renderer.RenderReport(report, renderer.RenderOptions{Raw: c.raw})
	if c.explain {
		comment, err := explain(ctx, md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error asking for insight: %v\n", err)
			return subcommands.ExitFailure
		}
		md += "\n## Insight\n\n" + comment + "\n"
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// explain asks Gemini to comment on a markdown report.
func explain(ctx context.Context, md string) (string, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("initializing Gemini's client: %w", err)
	}
	return insight.NewAnalyst().Explain(ctx, client, md)
}
