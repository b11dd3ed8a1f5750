package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storelens/storelens-cli/internal/dataset"
	"github.com/storelens/storelens-cli/internal/report"
)

var statsMaxRows int

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Print descriptive statistics for a transaction CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input file not found: %s", path)
		}
		maxRows := cfg.MaxRows
		if cmd.Flags().Changed("max-rows") {
			maxRows = statsMaxRows
		}
		table, err := dataset.Load(path, dataset.Options{MaxRows: maxRows})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Loaded %d transactions from %s\n\n", table.Len(), table.Name)
		report.WriteBasicStats(os.Stdout, table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsMaxRows, "max-rows", 0, "maximum rows to process (0 = unlimited)")
}
