// Command gigdex serves and queries the musician directory search engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/gigdex/internal/config"
	"github.com/kailas-cloud/gigdex/internal/version"
)

func main() {
	var env string

	rootCmd := &cobra.Command{
		Use:           "gigdex",
		Short:         "Search engine for the musician directory",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", config.GetEnv(),
		"Configuration environment (selects config/<env>.yaml)")

	rootCmd.AddCommand(newServeCmd(&env))
	rootCmd.AddCommand(newSearchCmd(&env))
	rootCmd.AddCommand(newSeedCmd(&env))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
