package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/bootstrap"
	"github.com/quayside-labs/walletkit/internal/ui"
	"github.com/quayside-labs/walletkit/internal/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> <address>",
	Short: "Add a wallet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name, address := args[0], args[1]

		mgr, err := newWalletManager(ctx)
		if err != nil {
			return err
		}
		if err := mgr.Add(ctx, name, &wallet.Wallet{
			Name:    name,
			Address: address,
		}); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q added: %s", name, ui.Addr(address))))
		fmt.Println(ui.Hint(fmt.Sprintf("Set as default with: walletkit wallet use %s", name)))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, err := newWalletManager(ctx)
		if err != nil {
			return err
		}
		wallets := mgr.List(ctx)

		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: walletkit wallet add myWallet 0xYourAddress"))
			return nil
		}

		t := ui.NewTable(ui.Components(), []ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44},
			{Title: "Connector", Width: 14},
			{Title: "Default", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault {
				def = ui.StyleSuccess.Render("✓")
			}
			t.AddRow(ui.Row{
				ui.Val(w.Name),
				ui.Addr(w.Address),
				ui.Platform(w.Connector),
				def,
			})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		mgr, err := newWalletManager(ctx)
		if err != nil {
			return err
		}
		if err := mgr.Remove(ctx, name); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		mgr, err := newWalletManager(ctx)
		if err != nil {
			return err
		}
		if err := mgr.SetDefault(ctx, name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		cfg.Save() //nolint:errcheck
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletRemoveCmd, walletUseCmd)
}

// newWalletManager creates a Manager backed by the platform-resolved storage
// adapter: secure store on hosts that have one, JSON file otherwise.
func newWalletManager(ctx context.Context) (*wallet.Manager, error) {
	bundle, err := bootstrap.Get(ctx)
	if err != nil {
		return nil, err
	}
	return wallet.NewManager(wallet.WithStorage(bundle.Storage)), nil
}
