// bomber is the terminal client bootstrap for the bomberman game.
//
// Usage:
//
//	bomber constants         - Print the constant set and derived cell size
//	bomber check             - Resolve the required surfaces of a page
//	bomber lobby             - Run the local lobby in the terminal
//	bomber history           - Show finished sessions
//
// Global flags:
//
//	--config <path>     - Custom bomber config YAML
//	--env <path>        - Dotenv file with BOMBER_* overrides (default: ./.env if present)
//	--db <path>         - Set database path (default: ~/.bomber/sessions.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/surface"
)

var (
	// Global flags
	flagConfig   string
	flagEnvFile  string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - bootstrap and lobby for the bomberman client",
	Long: `Bomber loads the client constants, checks that a host page exposes the
surfaces the client draws on, and runs a local lobby in the terminal.

Available commands:
  constants - Print the constant set
  check     - Resolve stats, matchfield and readyButton
  lobby     - Move around, place bombs and toggle ready
  history   - View finished sessions

Examples:
  bomber constants --format yaml
  bomber check --document ./index.html
  bomber lobby --name alice
  bomber history --limit 5`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom bomber config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", "", "Path to dotenv file with BOMBER_* overrides")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bomber/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lobbyCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger returns the command logger writing to stderr.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bomber",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig runs the config startup sequence or exits.
func loadConfig(logger *log.Logger) config.BomberConfig {
	cfg, err := config.Prepare(flagConfig, flagEnvFile)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("configuration loaded", "config", flagConfig, "env", flagEnvFile)
	return cfg
}

// surfaceIDs returns the configured surface identifiers.
func surfaceIDs(cfg config.BomberConfig) surface.IDs {
	return surface.IDs{
		Stats:       cfg.Surfaces.Stats,
		Matchfield:  cfg.Surfaces.Matchfield,
		ReadyButton: cfg.Surfaces.ReadyButton,
	}
}
