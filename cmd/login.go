package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/auth"
	"github.com/quayside-labs/walletkit/internal/bootstrap"
	"github.com/quayside-labs/walletkit/internal/ui"
)

var loginTimeout time.Duration

var loginCmd = &cobra.Command{
	Use:   "login <provider>",
	Short: "Log in with a social provider (google, github, discord)",
	Long: `Run the OAuth authorization-code flow for a social provider.

A one-shot callback server is started on the configured local address, the
authorization URL is printed for the browser, and the command waits for the
provider redirect before exchanging the code for a token.

Client ids live in the config file (oauth_client_ids). Client secrets are
read from WALLETKIT_<PROVIDER>_SECRET, e.g. WALLETKIT_GOOGLE_SECRET.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
		defer cancel()

		provider, err := auth.ProviderByName(args[0], cfg.OAuthClientIDs)
		if err != nil {
			return err
		}

		bundle, err := bootstrap.Get(ctx)
		if err != nil {
			return err
		}

		srv, err := auth.NewCallbackServer(cfg.CallbackAddr, logger)
		if err != nil {
			return err
		}

		authURL, err := provider.AuthCodeURL(srv.State(), srv.RedirectURI())
		if err != nil {
			return err
		}

		fmt.Println(ui.Info("Open this URL in your browser to continue:"))
		fmt.Println()
		fmt.Println("  " + ui.Addr(authURL))
		fmt.Println()
		fmt.Println(ui.Meta("Waiting for the provider redirect..."))

		result, err := srv.Wait(ctx)
		if err != nil {
			return err
		}

		secret := os.Getenv("WALLETKIT_" + strings.ToUpper(provider.Name) + "_SECRET")
		token, err := provider.Exchange(ctx, bundle.Network, result.Code, secret, srv.RedirectURI())
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Logged in with %s.", provider.Name)))
		fmt.Println(ui.KeyValueBlock("Token", [][2]string{
			{"Type", token.TokenType},
			{"Access token", ui.TruncateAddr(token.AccessToken)},
			{"Expires in", fmt.Sprintf("%ds", token.ExpiresIn)},
		}))
		return nil
	},
}

func init() {
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 3*time.Minute, "how long to wait for the provider redirect")
}
