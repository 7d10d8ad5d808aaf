package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecosort/wastesort"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search catalog items by keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(_ *cobra.Command, args []string) error {
	items := wastesort.DefaultCatalog().SearchByKeyword(args[0])
	if len(items) == 0 {
		fmt.Printf("no items match %q\n", args[0])
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-8s %s  %s\n", item.Name, item.Category, item.Disposal)
	}
	return nil
}
