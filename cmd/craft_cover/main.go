// Package main provides the entry point for the craft_cover CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "craft_cover",
	Short: "Find a small set of crafting recipes covering a list of items",
	Long: `craft_cover reads the crafting recipes and item tags of a Minecraft data pack and
greedily picks the fewest ingredient combinations that together use every target item.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
