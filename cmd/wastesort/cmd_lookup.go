package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecosort/wastesort"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up a catalog item by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func runLookup(_ *cobra.Command, args []string) error {
	item, err := wastesort.DefaultCatalog().SearchByName(args[0])
	if err != nil {
		return fmt.Errorf("lookup %q: %w", args[0], err)
	}

	fmt.Printf("%s (%s)\n", item.Name, item.Category)
	fmt.Printf("  %s\n", item.Description)
	fmt.Printf("  投放方法: %s\n", item.Disposal)
	if item.Tip != "" {
		fmt.Printf("  提示: %s\n", item.Tip)
	}
	return nil
}
