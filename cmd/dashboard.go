package cmd

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/bootstrap"
	"github.com/quayside-labs/walletkit/internal/price"
	"github.com/quayside-labs/walletkit/internal/ui"
)

var dashSymbols []string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live dashboard: platform, wallets and prices",
	Long: `Full-screen TUI composed from the platform-resolved UI primitives.

Shows the detected platform and adapter variants, the configured wallets,
and live token prices refreshed on the configured watch interval.

Keyboard controls:
  ↑↓ / j k   navigate price rows
  q           quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bundle, err := bootstrap.Get(ctx)
		if err != nil {
			return err
		}

		mgr, err := newWalletManager(ctx)
		if err != nil {
			return err
		}
		var walletItems []string
		for _, w := range mgr.List(ctx) {
			walletItems = append(walletItems, w.Name+"  "+ui.TruncateAddr(w.Address))
		}

		m := ui.NewDashboardModel(ui.Components())
		m.Platform = bundle.Platform.String()
		m.Storage = bundle.Storage.Name()
		m.Network = bundle.Network.Name()
		m.Wallets = walletItems
		m.Currency = cfg.PriceCurrency

		prog := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))

		fetcher := price.NewFetcher(bundle.Network, price.WithCurrency(cfg.PriceCurrency))
		interval := time.Duration(cfg.WatchInterval) * time.Second
		poller := price.NewPoller(fetcher, nil, dashSymbols, interval, logger)
		poller.Start(ctx, func(u price.Update) {
			msg := ui.DashPricesMsg{Prices: u.Prices}
			if u.Err != nil {
				msg.ErrMsg = u.Err.Error()
			}
			prog.Send(msg)
		})
		defer poller.Stop()

		_, err = prog.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().StringSliceVar(&dashSymbols, "symbols", []string{"eth", "btc", "sol"}, "token symbols to track")
}
