package cmd

import (
	"fmt"
	"os"

	"github.com/minicloud/portal/internal/config"
	"github.com/spf13/cobra"
)

// rootCmd runs the portal server when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "A small dashboard of the application stacks running on MiniCloud",
	Long: `portal lists the stacks deployed through Portainer and renders them as a
grid of launch cards, with a JSON mirror at /api/stacks.

Without PORTAINER_API_TOKEN it serves a fixed set of demo stacks.

Configuration is read from PORTAINER_* and PORTAL_* environment variables and
an optional YAML file (--config or PORTAL_CONFIG).`,
	SilenceUsage: true,
	RunE:         runServe,
}

// RootCommand returns the root command with all subcommands attached.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file (default $PORTAL_CONFIG)")
	rootCmd.PersistentFlags().String("addr", "", "listen address, e.g. 0.0.0.0:8600 (overrides config)")
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	return cfg, cfg.Validate()
}
