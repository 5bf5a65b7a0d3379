package main

import (
	"fmt"
	"os"

	"github.com/jonathan/craft-cover/internal/config"
	"github.com/jonathan/craft-cover/internal/tags"
	"github.com/spf13/cobra"
)

var resolveTagCmd = &cobra.Command{
	Use:   "resolve-tag <tag>",
	Short: "Print the items an item tag expands to",
	Long:  "Expands a tag such as minecraft:planks, following nested tag references, and prints one item per line.",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolveTag,
}

var (
	resolveTagDir    string
	resolveTagStrict bool
)

func init() {
	resolveTagCmd.Flags().StringVarP(&resolveTagDir, "tags", "t", config.Defaults().TagsDir, "Directory of item tag JSON files (env "+config.EnvTagsDir+")")
	resolveTagCmd.Flags().BoolVar(&resolveTagStrict, "strict", false, "Validate tag documents against the tag schema")

	rootCmd.AddCommand(resolveTagCmd)
}

func runResolveTag(_ *cobra.Command, args []string) error {
	resolver := tags.NewResolver(resolveTagDir, tags.WithStrict(resolveTagStrict))

	items, err := resolver.Resolve(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve tag %s: %w", args[0], err)
	}

	for _, item := range items {
		_, _ = fmt.Fprintln(os.Stdout, item)
	}
	_, _ = fmt.Fprintf(os.Stdout, "%d items (%d tag documents read)\n", len(items), resolver.Reads())
	return nil
}
