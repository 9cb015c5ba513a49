package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-quality-engine",
	Short: "A CLI for managing the asset quality scoring services",
	Long:  `stock-quality-engine adjusts raw investment scores for liquidity, stale pricing and data coverage, and gates asset eligibility for ranking.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
