// Package dca simulates dollar-cost averaging: investing a fixed amount at
// regular calendar periods in one or more instruments over a historical date
// range, and compares the resulting portfolio values.
//
// The computation is a pipeline of pure functions:
//   - Resample reduces a raw PriceSeries to the first traded price of each period.
//   - Simulate buys a fixed contribution at each resampled price and tracks
//     shares owned, total invested and portfolio value.
//   - Aggregate aligns all instruments' results on a shared date axis,
//     forward filling gaps, with a single reference "Total Invested" curve.
//   - Summarize computes the final value and return of each instrument.
//
// Run chains them all, fetching prices from a Provider first. Instruments
// without data do not abort a run, they are reported as Warnings.
//
// Price providers live in sub packages (yahoo, eodhd, csvfile), the
// dcasim command line tool and the HTTP server are built on top of Run.
package dca
