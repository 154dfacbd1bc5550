// Package eodhd provides historical prices and instrument search from EOD Historical Data (https://eodhd.com).
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/dca"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// APIKeyEnv is the environment variable holding the EODHD API key.
const APIKeyEnv = "EODHD_API_KEY"

// ErrNoAPIKey is returned when the client has no API key.
var ErrNoAPIKey = errors.New("EODHD API key is not set, get one at https://eodhd.com/")

// Client is an EODHD client. It implements dca.Provider and dca.Searcher.
type Client struct {
	APIKey  string
	HTTP    *http.Client
	BaseURL string
}

// New returns a Client for key, with a daily disk cache.
func New(key string) *Client {
	return &Client{
		APIKey:  key,
		HTTP:    dca.NewCachingClient("", dca.Daily),
		BaseURL: DefaultBaseURL,
	}
}

var (
	_ dca.Provider = (*Client)(nil)
	_ dca.Searcher = (*Client)(nil)
)

// Prices returns the daily adjusted close prices for a given EODHD ticker.
// The EODHD ticker format is typically "SYMBOL.EXCHANGECODE", like "MCD.US".
func (c *Client) Prices(ctx context.Context, ticker string, r dca.Range) (dca.PriceSeries, error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	//
	// bounds are included in the response.
	if c.APIKey == "" {
		return dca.PriceSeries{}, ErrNoAPIKey
	}
	q := url.Values{
		"fmt":       {"json"},
		"api_token": {c.APIKey},
		"from":      {r.From.String()},
		"to":        {r.To.String()},
	}
	addr := fmt.Sprintf("%s/eod/%s?%s", c.BaseURL, url.PathEscape(ticker), q.Encode())

	type Info struct {
		Date          dca.Date            `json:"date"`
		Close         decimal.NullDecimal `json:"close"`
		AdjustedClose decimal.NullDecimal `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := dca.GetJSON(ctx, c.HTTP, addr, nil, &content); err != nil {
		return dca.PriceSeries{}, fmt.Errorf("eodhd prices %s: %w", ticker, err)
	}

	h := new(dca.History[decimal.NullDecimal])
	for _, info := range content {
		price := info.AdjustedClose
		if !price.Valid {
			price = info.Close
		}
		h.Append(info.Date, price)
	}
	return dca.SeriesFromHistory(ticker, h), nil
}

// searchResult matches the structure of a single item in the EODHD search API response.
type searchResult struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
	Country  string `json:"Country"`
	Currency string `json:"Currency"`
	ISIN     string `json:"ISIN"`
}

// Search searches for instruments via EOD Historical Data API.
//
// Result symbols are EODHD tickers ready to be passed to Prices.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]dca.SearchResult, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	addr := fmt.Sprintf("%s/search/%s?api_token=%s&fmt=json", c.BaseURL, url.PathEscape(searchTerm), url.QueryEscape(c.APIKey))

	var content []searchResult
	if err := dca.GetJSON(ctx, c.HTTP, addr, nil, &content); err != nil {
		return nil, fmt.Errorf("eodhd search %q: %w", searchTerm, err)
	}
	results := make([]dca.SearchResult, 0, len(content))
	for _, item := range content {
		results = append(results, dca.SearchResult{
			Symbol:   item.Code + "." + item.Exchange,
			Name:     item.Name,
			Exchange: item.Exchange,
			Type:     item.Type,
			Currency: item.Currency,
		})
	}
	return results, nil
}
