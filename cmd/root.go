package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/storelens/storelens-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config at initialization)
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "storelens",
	Short: "StoreLens CLI: descriptive analytics for retail transaction data",
	Long:  `StoreLens is a CLI tool that loads a fixed-schema retail transaction CSV and produces descriptive statistics, static and interactive charts, a customer segmentation, and a plain-text report.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.storelens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still allow every command to run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{OutputDir: ".", Clusters: 3, Seed: 42, MaxIterations: 300, ChartDPI: 150}
		return
	}
	cfg = c
}
