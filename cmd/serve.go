package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/dca"
	"github.com/etnz/dca/server"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve simulations over HTTP" }
func (*serveCmd) Usage() string {
	return `dcasim serve [-addr <address>]

  Serves a JSON API:

    GET  /health
    GET  /api/instruments
    GET  /api/search?q=<term>
    POST /api/simulate   {"from": "2020-01-01", "contribution": 100, "instruments": [{"name": "Apple", "symbol": "AAPL"}]}
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	provider, err := newProvider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	searcher, _ := provider.(dca.Searcher)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         c.addr,
		Handler:      server.NewRouter(server.NewHandler(provider, searcher)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // simulations fetch prices first
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s with provider %s", c.addr, *providerName)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
