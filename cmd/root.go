package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quayside-labs/walletkit/internal/adapters"
	"github.com/quayside-labs/walletkit/internal/bootstrap"
	"github.com/quayside-labs/walletkit/internal/config"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/quayside-labs/walletkit/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
	logger  zerolog.Logger
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "walletkit",
	Short: "Cross-platform wallet SDK playground",
	Long: `walletkit — one wallet SDK surface across web, Next.js, React Native and node.

  Inspect what the platform layer detected, manage wallets on whichever
  storage the host resolved, connect sessions, log in with a social
  provider, and watch live token prices.

The host platform is detected once per process; every command reuses the
same resolved adapter bundle.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		godotenv.Load() //nolint:errcheck

		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()

		bootstrap.Configure(
			adapters.WithLogger(logger),
			adapters.WithStorageDir(cfg.Dir()),
		)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// WALLETKIT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("WALLETKIT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.walletkit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Register all sub-commands.
	rootCmd.AddCommand(
		statusCmd,
		walletCmd,
		connectCmd,
		loginCmd,
		pricesCmd,
		dashboardCmd,
	)
}
