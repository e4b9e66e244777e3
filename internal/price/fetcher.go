// Package price retrieves and caches token prices for the wallet UI.
package price

import (
	"context"
	"fmt"
	"strings"

	"github.com/quayside-labs/walletkit/internal/adapters"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Fetcher retrieves token prices from CoinGecko through the resolved network
// adapter.
type Fetcher struct {
	net      adapters.NetworkAdapter
	baseURL  string
	currency string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithBaseURL overrides the CoinGecko endpoint (tests).
func WithBaseURL(u string) FetcherOption {
	return func(f *Fetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithCurrency sets the quote currency, default usd.
func WithCurrency(c string) FetcherOption {
	return func(f *Fetcher) {
		if c != "" {
			f.currency = strings.ToLower(c)
		}
	}
}

// NewFetcher creates a price fetcher on top of a network adapter.
func NewFetcher(net adapters.NetworkAdapter, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		net:      net,
		baseURL:  defaultBaseURL,
		currency: "usd",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Currency returns the quote currency.
func (f *Fetcher) Currency() string { return f.currency }

// coinIDs maps token symbols to CoinGecko coin ids.
var coinIDs = map[string]string{
	"eth":   "ethereum",
	"btc":   "bitcoin",
	"matic": "matic-network",
	"pol":   "matic-network",
	"bnb":   "binancecoin",
	"avax":  "avalanche-2",
	"sol":   "solana",
	"usdc":  "usd-coin",
	"usdt":  "tether",
	"dai":   "dai",
	"op":    "optimism",
	"arb":   "arbitrum",
	"link":  "chainlink",
	"uni":   "uniswap",
}

// CoinID resolves a token symbol to its CoinGecko id.
func CoinID(symbol string) (string, error) {
	id, ok := coinIDs[strings.ToLower(symbol)]
	if !ok {
		return "", fmt.Errorf("unknown token symbol: %s", symbol)
	}
	return id, nil
}

// Symbols lists the supported token symbols.
func Symbols() []string {
	out := make([]string, 0, len(coinIDs))
	for s := range coinIDs {
		out = append(out, s)
	}
	return out
}

// Get returns the price for a single token symbol.
func (f *Fetcher) Get(ctx context.Context, symbol string) (float64, error) {
	id, err := CoinID(symbol)
	if err != nil {
		return 0, err
	}
	prices, err := f.fetchBatch(ctx, []string{id})
	if err != nil {
		return 0, err
	}
	p, ok := prices[id]
	if !ok {
		return 0, fmt.Errorf("price not available for: %s", symbol)
	}
	return p, nil
}

// GetMany fetches prices for multiple token symbols in one request. Unknown
// symbols are skipped rather than failing the batch.
func (f *Fetcher) GetMany(ctx context.Context, symbols []string) (map[string]float64, error) {
	ids := make(map[string]string)
	for _, s := range symbols {
		if id, err := CoinID(s); err == nil {
			ids[strings.ToLower(s)] = id
		}
	}
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	unique := make(map[string]struct{})
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	idList := make([]string, 0, len(unique))
	for id := range unique {
		idList = append(idList, id)
	}

	prices, err := f.fetchBatch(ctx, idList)
	if err != nil {
		return nil, err
	}

	result := make(map[string]float64)
	for sym, id := range ids {
		if p, ok := prices[id]; ok {
			result[sym] = p
		}
	}
	return result, nil
}

func (f *Fetcher) fetchBatch(ctx context.Context, ids []string) (map[string]float64, error) {
	url := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=%s",
		f.baseURL,
		strings.Join(ids, ","),
		f.currency,
	)

	resp, err := f.net.Do(ctx, &adapters.Request{URL: url})
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	if resp.Status != 200 {
		return nil, fmt.Errorf("price endpoint returned status %d", resp.Status)
	}

	// Response: {"ethereum":{"usd":1234.56}, ...}
	var raw map[string]map[string]float64
	if err := resp.JSON(&raw); err != nil {
		return nil, fmt.Errorf("parsing price response: %w", err)
	}

	prices := make(map[string]float64)
	for id, currencies := range raw {
		if p, ok := currencies[f.currency]; ok {
			prices[id] = p
		}
	}
	return prices, nil
}
