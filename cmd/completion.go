package cmd

import (
	"strings"

	"github.com/etnz/dca"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictPeriod = predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"}
	predictDate   = predict.Set{"-1y", "-2y", "-5y", "-10y", "-6m", "0d"}
)

// predictInstruments proposes the predefined instruments as simulate arguments.
var predictInstruments = complete.PredictFunc(func(prefix string) []string {
	var res []string
	for _, in := range dca.Predefined() {
		arg := in.Name + "=" + in.Symbol
		if strings.HasPrefix(in.Symbol, prefix) {
			res = append(res, in.Symbol)
		} else if strings.HasPrefix(arg, prefix) {
			res = append(res, arg)
		}
	}
	return res
})

// Completion returns the shell completion tree of the dcasim command.
func Completion() *complete.Command {
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"simulate": {
				Flags: map[string]complete.Predictor{
					"from":     predictDate,
					"to":       predictDate,
					"amount":   predict.Something,
					"period":   predictPeriod,
					"currency": predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
					"align":    predict.Nothing,
					"raw":      predict.Nothing,
					"json":     predict.Nothing,
					"explain":  predict.Nothing,
				},
				Args: predictInstruments,
			},
			"instruments": {},
			"search":      {Args: predict.Something},
			"serve": {
				Flags: map[string]complete.Predictor{"addr": predict.Set{":8080", "localhost:8080"}},
			},
			"topic":    {Args: predict.Set{"simulation", "providers", "server", "*"}},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"provider":      predict.Set(Providers),
			"eodhd-api-key": predict.Something,
			"csv":           predict.Files("*.csv"),
			"cache-dir":     predict.Dirs("*"),
			"markdown":      predict.Nothing,
		},
	}
}
