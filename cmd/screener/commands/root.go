package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "peakscan - high-proximity market screener",
	Long: `peakscan CLI

Scans a symbol universe for stocks trading near their all-time or
52-week highs and publishes the matches to CSV, Excel, and email sinks.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener scan --universe sp500.csv
  go run ./cmd/screener scan --universe sp500.csv --interactive
  go run ./cmd/screener schedule --universe sp500.csv --cron "0 30 16 * * 1-5"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
