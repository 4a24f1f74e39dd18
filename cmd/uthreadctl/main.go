// Command uthreadctl runs the fiber runtime's demo scenarios from the
// command line, for manual exercise and for CI smoke checks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "uthreadctl",
		Short:   "Drive the fiber runtime's scenarios",
		Long:    `uthreadctl runs the cooperative fiber scheduler's demo scenarios and reports their results.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a uthreadctl.yaml config file")
	rootCmd.PersistentFlags().String("log-level", "", "zerolog level: trace, debug, info, warn, error, disabled")

	rootCmd.AddCommand(newRunCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
