package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecosort/wastesort"
	"github.com/ecosort/wastesort/internal/config"
	"github.com/ecosort/wastesort/internal/storage"
)

// cliUserID tags records created from the command line.
const cliUserID = "cli"

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wastesort",
	Short: "Heuristic garbage sorting assistant",
	Long: "wastesort classifies household waste into the four sorting categories\n" +
		"(可回收物, 有害垃圾, 厨余垃圾, 其他垃圾) from item names, keywords or photos.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (config and database)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.Version = version
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// printRanked writes a ranked score list the way the web UI shows it.
func printRanked(ranked []wastesort.CategoryScore) {
	for _, cs := range ranked {
		fmt.Printf("  %-6s %5.1f%%\n", cs.Category, cs.Score*100)
	}
}

// recordResult persists a classification from the command line. Storage
// trouble never fails the command; the result was already printed.
func recordResult(dataDir, action, itemName string, ranked []wastesort.CategoryScore) {
	if len(ranked) == 0 {
		return
	}
	logger := newLogger()
	store, err := storage.Open(dataDir, logger)
	if err != nil {
		logger.Debug("open storage failed", "error", err)
		return
	}
	defer store.Close()

	err = store.AddRecord(storage.Record{
		UserID:     cliUserID,
		Action:     action,
		ItemName:   itemName,
		Category:   ranked[0].Category,
		Confidence: ranked[0].Score,
	})
	if err != nil {
		logger.Debug("persist record failed", "error", err)
	}
}
