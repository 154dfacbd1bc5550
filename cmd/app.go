// Package cmd implements the dcasim command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dca"
	"github.com/etnz/dca/csvfile"
	"github.com/etnz/dca/eodhd"
	"github.com/etnz/dca/yahoo"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&simulateCmd{}, "simulation")
	c.Register(&instrumentsCmd{}, "simulation")
	c.Register(&searchCmd{}, "simulation")
	c.Register(&serveCmd{}, "server")
	c.Register(&topicCmd{}, "help")
}

const (
	EnvProvider = "DCA_PROVIDER"
	EnvCacheDir = "DCA_CACHE_DIR"
	EnvCSVFile  = "DCA_CSV_FILE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	providerName = flag.String("provider", envOr(EnvProvider, "yahoo"), "Price provider: yahoo, eodhd or csv. Defaults to the "+EnvProvider+" environment variable.")
	eodhdAPIKey  = flag.String("eodhd-api-key", "", "EODHD API key. This flag takes precedence over the "+eodhd.APIKeyEnv+" environment variable.")
	csvFile      = flag.String("csv", envOr(EnvCSVFile, "prices.csv"), "Path to the CSV price file used by the csv provider. Defaults to the "+EnvCSVFile+" environment variable.")
	cacheDir     = flag.String("cache-dir", os.Getenv(EnvCacheDir), "Directory of the HTTP cache. Defaults to the system temporary directory.")
	rawMarkdown  = flag.Bool("markdown", false, "Print reports as raw markdown instead of rendering them for the terminal.")
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Providers lists the supported provider names.
var Providers = []string{"yahoo", "eodhd", "csv"}

// newProvider returns the provider selected by the global flags.
func newProvider() (dca.Provider, error) {
	switch *providerName {
	case "yahoo":
		c := yahoo.New()
		c.HTTP = dca.NewCachingClient(*cacheDir, dca.Daily)
		return c, nil
	case "eodhd":
		key := *eodhdAPIKey
		if key == "" {
			key = os.Getenv(eodhd.APIKeyEnv)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: use -eodhd-api-key flag or %s environment variable", eodhd.ErrNoAPIKey, eodhd.APIKeyEnv)
		}
		c := eodhd.New(key)
		c.HTTP = dca.NewCachingClient(*cacheDir, dca.Daily)
		return c, nil
	case "csv":
		return &csvfile.File{Path: *csvFile}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q, want one of %q", *providerName, Providers)
	}
}

// printMarkdown prints md to stdout, rendered for the terminal unless -markdown is set.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
