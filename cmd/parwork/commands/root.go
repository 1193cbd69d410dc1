package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// configPath is shared by all subcommands; empty means built-in defaults.
var configPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "parwork",
	Short: "parwork - producer/consumer and partitioned reduction demos",
	Long: `parwork demonstrates the two coordination primitives of the parwork
library: a closable FIFO queue run between a producer and a consumer, and a
partitioned parallel reduction with one worker per contiguous input span.

Each demo prints what it observes, so ordering and termination behavior are
visible on the terminal.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version string reported by --version.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to an optional parwork.yml overriding the built-in defaults")
}
