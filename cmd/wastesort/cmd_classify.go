package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Classify an item description",
	Long:  "Runs the rule and keyword scoring over the given text and prints the ranked categories.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	classifier := cfg.Classifier()

	text := strings.Join(args, " ")
	ranked := classifier.ClassifyText(text)
	if len(ranked) == 0 {
		fmt.Printf("no match for %q\n", text)
		return nil
	}

	fmt.Printf("%s:\n", text)
	printRanked(ranked)
	recordResult(cfg.DataDir, "text_classify", text, ranked)
	if classifier.Uncertain(ranked) {
		fmt.Println("  (low confidence)")
	}

	if item, err := classifier.LookupItem(text); err == nil {
		fmt.Printf("\n%s (%s)\n", item.Name, item.Category)
		fmt.Printf("  %s\n", item.Description)
		fmt.Printf("  投放方法: %s\n", item.Disposal)
	}
	return nil
}
