package dca

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Warning reports an instrument excluded from the simulation.
type Warning struct {
	Instrument Instrument `json:"instrument"`
	Err        error      `json:"-"`
}

func (w Warning) Error() string {
	return fmt.Sprintf("could not calculate data for %s: %v", w.Instrument, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

func (w Warning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Instrument Instrument `json:"instrument"`
		Message    string     `json:"message"`
	}{w.Instrument, w.Err.Error()})
}

// Report is the complete outcome of a simulation run.
type Report struct {
	Config    Config             `json:"-"`
	Results   []SimulationResult `json:"-"`
	Portfolio *Portfolio         `json:"portfolio"`
	Summary   Summary            `json:"summary"`
	Warnings  []Warning          `json:"warnings,omitempty"`
}

// Run simulates cfg with prices from p.
//
// Configuration errors are returned before any call to p. Instruments
// without data are excluded and reported in Report.Warnings; if no
// instrument has data Run returns ErrNoUsableData together with a Report
// holding the warnings.
//
// Provider failures never abort the run, only ctx cancellation does.
func Run(ctx context.Context, cfg Config, p Provider) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	series, errs, err := fetch(ctx, cfg, p)
	if err != nil {
		return nil, err
	}

	r := &Report{Config: cfg}
	for i, in := range cfg.Instruments {
		if errs[i] != nil {
			r.Warnings = append(r.Warnings, Warning{Instrument: in, Err: errs[i]})
			r.Results = append(r.Results, SimulationResult{Instrument: in})
			continue
		}
		s := Resample(series[i], cfg.Period)
		if cfg.AlignToPeriodStart {
			s = AlignToPeriodStart(s, cfg.Period)
		}
		res := Simulate(in, s, cfg.Contribution)
		if res.IsEmpty() {
			r.Warnings = append(r.Warnings, Warning{
				Instrument: in,
				Err:        fmt.Errorf("%w: no positive price between %s and %s", ErrDataUnavailable, cfg.From, cfg.To),
			})
		}
		r.Results = append(r.Results, res)
	}

	portfolio, _, err := Aggregate(r.Results)
	if err != nil {
		return r, err
	}
	r.Portfolio = portfolio
	r.Summary, err = Summarize(portfolio)
	if err != nil {
		return r, err
	}
	return r, nil
}

// fetch returns one series per instrument of cfg, or the error that made it unavailable.
func fetch(ctx context.Context, cfg Config, p Provider) ([]PriceSeries, []error, error) {
	series := make([]PriceSeries, len(cfg.Instruments))
	errs := make([]error, len(cfg.Instruments))
	r := cfg.Range()

	if bp, ok := p.(BatchProvider); ok {
		table, err := bp.Table(ctx, cfg.Instruments.Symbols(), r)
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		var split map[string]PriceSeries
		if err == nil {
			split = table.Split()
		}
		for i, in := range cfg.Instruments {
			if err != nil {
				errs[i] = fmt.Errorf("%w: %w", ErrDataUnavailable, err)
				continue
			}
			series[i], errs[i] = check(split[in.Symbol], in, r)
		}
		return series, errs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	} else {
		g.SetLimit(1)
	}
	for i, in := range cfg.Instruments {
		g.Go(func() error {
			s, err := p.Prices(gctx, in.Symbol, r)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				errs[i] = fmt.Errorf("%w: %w", ErrDataUnavailable, err)
				return nil
			}
			series[i], errs[i] = check(s, in, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return series, errs, nil
}

// check returns s restricted to r, or ErrDataUnavailable if nothing is left.
func check(s PriceSeries, in Instrument, r Range) (PriceSeries, error) {
	out := PriceSeries{Symbol: s.Symbol}
	for _, pt := range s.Points {
		if r.Contains(pt.Date) {
			out.Points = append(out.Points, pt)
		}
	}
	if len(out.Points) == 0 {
		return out, fmt.Errorf("%w: no price for %s between %s and %s", ErrDataUnavailable, in.Symbol, r.From, r.To)
	}
	return out, nil
}
