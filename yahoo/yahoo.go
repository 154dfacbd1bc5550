// Package yahoo provides historical prices and instrument search from Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dca"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Yahoo Finance API root.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// searchCount is the maximum number of quotes returned by Search.
const searchCount = 5

// Yahoo rejects requests without a browser like user agent.
var header = http.Header{"User-Agent": {"Mozilla/5.0"}}

// Client is a Yahoo Finance client. It implements dca.Provider and dca.Searcher.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New returns a Client with a daily disk cache.
func New() *Client {
	return &Client{
		HTTP:    dca.NewCachingClient("", dca.Daily),
		BaseURL: DefaultBaseURL,
	}
}

var (
	_ dca.Provider = (*Client)(nil)
	_ dca.Searcher = (*Client)(nil)
)

// Prices returns the daily adjusted close prices of symbol over r.
//
// Days without a traded price are returned as missing points.
func (c *Client) Prices(ctx context.Context, symbol string, r dca.Range) (dca.PriceSeries, error) {
	// https://query2.finance.yahoo.com/v8/finance/chart/AAPL?period1=1577836800&period2=1580515200&interval=1d&events=history
	// {
	//   "chart": {
	//     "result": [{
	//       "meta": {"currency": "USD", "symbol": "AAPL", "gmtoffset": -18000, ...},
	//       "timestamp": [1577975400, 1578061800, ...],
	//       "indicators": {
	//         "quote": [{"close": [75.0875, 74.3575, ...], ...}],
	//         "adjclose": [{"adjclose": [72.71, 72.00, ...]}]
	//       }
	//     }],
	//     "error": null
	//   }
	// }
	q := url.Values{
		"period1":              {fmt.Sprint(r.From.Unix())},
		"period2":              {fmt.Sprint(r.To.Add(1).Unix())}, // period2 is exclusive
		"interval":             {"1d"},
		"events":               {"history"},
		"includeAdjustedClose": {"true"},
	}
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.BaseURL, url.PathEscape(symbol), q.Encode())

	var jobj any
	if err := dca.GetJSON(ctx, c.HTTP, addr, header, &jobj); err != nil {
		return dca.PriceSeries{}, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	return parseChart(symbol, jobj)
}

// parseChart extracts the price series from a decoded chart response.
func parseChart(symbol string, jobj any) (dca.PriceSeries, error) {
	if jerr, err := jsonpath.Get("$.chart.error", jobj); err == nil && jerr != nil {
		return dca.PriceSeries{}, fmt.Errorf("yahoo chart %s: %v", symbol, jerr)
	}

	// A symbol without data in that range has no timestamp at all.
	timestamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return dca.PriceSeries{Symbol: symbol}, nil
	}

	var offset float64
	if v, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", jobj); err == nil {
		offset, _ = v.(float64)
	}

	prices, err := jsonpath.Get("$.chart.result[0].indicators.adjclose[0].adjclose", jobj)
	if err != nil {
		// Indices have no adjusted close, the close is the same.
		prices, err = jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
		if err != nil {
			return dca.PriceSeries{}, fmt.Errorf("yahoo chart %s: no price in response: %w", symbol, err)
		}
	}

	ts, px := list(timestamps), list(prices)
	if len(ts) != len(px) {
		return dca.PriceSeries{}, fmt.Errorf("yahoo chart %s: %d timestamps for %d prices", symbol, len(ts), len(px))
	}

	h := new(dca.History[decimal.NullDecimal])
	for i, t := range ts {
		sec, ok := t.(float64)
		if !ok {
			return dca.PriceSeries{}, fmt.Errorf("yahoo chart %s: invalid timestamp %v", symbol, t)
		}
		// Timestamps are the exchange's opening time, shifted to the exchange's time zone they fall on the trading day.
		on := dca.DateOf(time.Unix(int64(sec+offset), 0).UTC())
		var price decimal.NullDecimal
		if v, ok := px[i].(float64); ok { // null values are days without trade
			price = decimal.NewNullDecimal(decimal.NewFromFloat(v))
		}
		h.Append(on, price)
	}
	return dca.SeriesFromHistory(symbol, h), nil
}

// list returns v as a list, unwrapping the single element list jsonpath may return.
func list(v any) []any {
	l, ok := v.([]any)
	if !ok {
		return nil
	}
	if len(l) == 1 {
		if inner, ok := l[0].([]any); ok {
			return inner
		}
	}
	return l
}

// Search searches Yahoo Finance for instruments matching query.
func (c *Client) Search(ctx context.Context, query string) ([]dca.SearchResult, error) {
	q := url.Values{
		"q":           {query},
		"quotesCount": {fmt.Sprint(searchCount)},
		"newsCount":   {"0"},
	}
	addr := fmt.Sprintf("%s/v1/finance/search?%s", c.BaseURL, q.Encode())

	var content struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			LongName  string `json:"longname"`
			ExchDisp  string `json:"exchDisp"`
			TypeDisp  string `json:"typeDisp"`
		} `json:"quotes"`
	}
	if err := dca.GetJSON(ctx, c.HTTP, addr, header, &content); err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}

	results := make([]dca.SearchResult, 0, len(content.Quotes))
	for _, item := range content.Quotes {
		if item.Symbol == "" {
			continue
		}
		name := item.ShortName
		if name == "" {
			name = item.LongName
		}
		if name == "" {
			name = item.Symbol
		}
		results = append(results, dca.SearchResult{
			Symbol:   item.Symbol,
			Name:     name,
			Exchange: item.ExchDisp,
			Type:     item.TypeDisp,
		})
	}
	return results, nil
}
