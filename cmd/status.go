package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/bootstrap"
	"github.com/quayside-labs/walletkit/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show detected platform, capabilities and resolved adapters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := bootstrap.Get(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(ui.Banner())

		fmt.Println(ui.KeyValueBlock("Platform", [][2]string{
			{"Detected", bundle.Platform.String()},
			{"Secure storage", yesNo(bundle.Caps.SecureStorage)},
			{"Native crypto", yesNo(bundle.Caps.NativeCrypto)},
			{"Native fetch", yesNo(bundle.Caps.NativeFetch)},
			{"UI toolkit", yesNo(bundle.Caps.NativeUIToolkit)},
		}))

		fmt.Println(ui.KeyValueBlock("Adapters", [][2]string{
			{"Storage", bundle.Storage.Name()},
			{"Crypto", cryptoLabel(bundle)},
			{"Network", bundle.Network.Name()},
			{"UI variant", ui.Components().Variant},
		}))

		if !bundle.Crypto.Secure() {
			fmt.Println(ui.Warn("crypto adapter is NOT cryptographically secure on this host"))
		}
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func cryptoLabel(b *bootstrap.AdapterBundle) string {
	if b.Crypto.Secure() {
		return b.Crypto.Name()
	}
	return b.Crypto.Name() + " (insecure)"
}
