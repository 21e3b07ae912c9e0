package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "customer-reviews",
	Short: "Customers, items and the reviews that connect them",
	Long: `customer-reviews serves a JSON API over customers, items and reviews.

Deleting a customer or an item removes its reviews with it. Customers and
items expose the other side of the relationship as derived views reached
through their reviews.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "Path to the dotenv config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
