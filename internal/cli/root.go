package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/quayside/internal/app"
	"github.com/five82/quayside/internal/config"
)

// RootCmd returns the quayside root command. Run without a subcommand it
// starts the TUI.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quayside",
		Short: "Browse shipping containers from the terminal",
		Long: `quayside lists the containers served by the container API and lets you
filter them by ID, agency, booking or port, narrow them to a departure day,
and page through the results.

Usage:
  quayside                              # Start the TUI
  quayside list --query valparaiso      # Print one page of matches
  quayside show 42                      # Print a single container
  quayside logs --level warn            # Tail quayside's own log`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default ~/.config/quayside/config.toml)")
	flags.String("api-url", "", "container API base URL (overrides config)")
	flags.String("log-dir", "", "log directory (overrides config)")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	return app.Run(cmd.Context(), sessionOptions(cmd))
}

// sessionOptions reads the persistent flags shared by every command.
func sessionOptions(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	apiURL, _ := cmd.Flags().GetString("api-url")
	logDir, _ := cmd.Flags().GetString("log-dir")
	return app.Options{
		ConfigPath: configPath,
		Overrides: config.Overrides{
			APIURL: apiURL,
			LogDir: logDir,
		},
	}
}
