package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/ui"
	"github.com/quayside-labs/walletkit/internal/wallet"
)

var (
	connectorFlag string
	saveAsFlag    string
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a wallet session through a connector",
	Long: `Run the full session flow against a connector: connect, report the
accounts it exposed, optionally save the first account as a wallet, then
disconnect.

Available connectors: injected, walletconnect, social.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id := connectorFlag
		if id == "" {
			id = cfg.Connector
		}
		conn, err := wallet.ConnectorByID(id)
		if err != nil {
			return fmt.Errorf("%w\n  Available: %s", err, strings.Join(connectorIDs(), ", "))
		}

		em := wallet.NewEmitter()
		em.On(wallet.EventConnect, func(p wallet.Payload) {
			fmt.Println(ui.Success(fmt.Sprintf("Connected via %s (chain %s)", ui.Platform(p.Connector), p.ChainID)))
		})
		em.On(wallet.EventDisconnect, func(p wallet.Payload) {
			fmt.Println(ui.Meta("Session closed."))
		})

		session := wallet.NewSession(em)
		if err := session.Connect(ctx, conn); err != nil {
			return err
		}

		accounts := session.Accounts()
		t := ui.NewTable(ui.Components(), []ui.Column{
			{Title: "#", Width: 3},
			{Title: "Account", Width: 44},
		})
		for i, a := range accounts {
			t.AddRow(ui.Row{fmt.Sprintf("%d", i), ui.Addr(a.Address)})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("session %s", session.ID())))

		if saveAsFlag != "" && len(accounts) > 0 {
			mgr, err := newWalletManager(ctx)
			if err != nil {
				return err
			}
			if err := mgr.Add(ctx, saveAsFlag, &wallet.Wallet{
				Name:      saveAsFlag,
				Address:   accounts[0].Address,
				Connector: id,
			}); err != nil {
				return err
			}
			fmt.Println(ui.Success(fmt.Sprintf("Saved account as wallet %q.", saveAsFlag)))
		}

		return session.Disconnect(ctx)
	},
}

func connectorIDs() []string {
	var ids []string
	for _, c := range wallet.Connectors() {
		ids = append(ids, c.ID())
	}
	return ids
}

func init() {
	connectCmd.Flags().StringVar(&connectorFlag, "connector", "", "connector id (default: configured connector)")
	connectCmd.Flags().StringVar(&saveAsFlag, "save-as", "", "save the first connected account as a wallet with this name")
}
