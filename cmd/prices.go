package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/bootstrap"
	"github.com/quayside-labs/walletkit/internal/price"
	"github.com/quayside-labs/walletkit/internal/ui"
)

var (
	watchFlag    bool
	currencyFlag string
)

var pricesCmd = &cobra.Command{
	Use:   "prices [symbols...]",
	Short: "Show token prices (default: eth btc sol)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		symbols := args
		if len(symbols) == 0 {
			symbols = []string{"eth", "btc", "sol"}
		}
		currency := currencyFlag
		if currency == "" {
			currency = cfg.PriceCurrency
		}

		bundle, err := bootstrap.Get(ctx)
		if err != nil {
			return err
		}
		fetcher := price.NewFetcher(bundle.Network, price.WithCurrency(currency))

		if !watchFlag {
			prices, err := fetcher.GetMany(ctx, symbols)
			if err != nil {
				return err
			}
			fmt.Println(renderPrices(prices, currency))
			return nil
		}

		interval := time.Duration(cfg.WatchInterval) * time.Second
		cache := price.NewCache(interval)
		poller := price.NewPoller(fetcher, cache, symbols, interval, logger)

		fmt.Println(ui.Meta(fmt.Sprintf("refreshing every %s — ctrl-c to stop", interval)))
		poller.Start(ctx, func(u price.Update) {
			if u.Err != nil {
				fmt.Println(ui.Err(u.Err.Error()))
				return
			}
			fmt.Println(renderPrices(u.Prices, currency))
		})
		defer poller.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case <-ctx.Done():
		}
		return nil
	},
}

func renderPrices(prices map[string]float64, currency string) string {
	symbols := make([]string, 0, len(prices))
	for s := range prices {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	t := ui.NewTable(ui.Components(), []ui.Column{
		{Title: "Token", Width: 8},
		{Title: "Price (" + currency + ")", Width: 16},
	})
	for _, s := range symbols {
		t.AddRow(ui.Row{ui.Platform(s), ui.Val(fmt.Sprintf("%.2f", prices[s]))})
	}
	return t.Render()
}

func init() {
	pricesCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "refresh on the configured interval")
	pricesCmd.Flags().StringVar(&currencyFlag, "currency", "", "quote currency (default: configured)")
}
