package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/storelens/storelens-cli/internal/analysis"
	"github.com/storelens/storelens-cli/internal/dataset"
	"github.com/storelens/storelens-cli/internal/render"
	"github.com/storelens/storelens-cli/internal/report"
	"github.com/storelens/storelens-cli/internal/utils"
)

var (
	anaOutputDir string
	anaDelimiter string
	anaMaxRows   int
	anaClusters  int
	anaSeed      int64
	anaMaxIter   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full analysis pipeline on a transaction CSV",
	Long: `Analyze loads the transaction table, prints descriptive statistics,
renders the static dashboard and the two interactive charts, segments the
transactions, and writes the plain-text report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input file not found: %s", path)
		}

		opt := dataset.Options{}
		switch anaDelimiter {
		case "":
		case ",":
			opt.Delimiter = ','
		case ";":
			opt.Delimiter = ';'
		case "\t", "tab":
			opt.Delimiter = '\t'
		default:
			return fmt.Errorf("unsupported --delimiter: %s", anaDelimiter)
		}
		maxRows := cfg.MaxRows
		if cmd.Flags().Changed("max-rows") {
			maxRows = anaMaxRows
		}
		opt.MaxRows = maxRows

		outDir := cfg.OutputDir
		if cmd.Flags().Changed("output-dir") {
			outDir = anaOutputDir
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("output dir: %w", err)
		}
		clusters := cfg.Clusters
		if cmd.Flags().Changed("clusters") {
			clusters = anaClusters
		}
		seed := cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed = anaSeed
		}
		maxIter := cfg.MaxIterations
		if cmd.Flags().Changed("max-iterations") {
			maxIter = anaMaxIter
		}

		table, err := dataset.Load(path, opt)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Loaded %d transactions from %s\n", table.Len(), table.Name)

		fmt.Println()
		report.WriteBasicStats(os.Stdout, table)

		corr := analysis.Correlations(table.Records)
		dashPath := filepath.Join(outDir, render.DashboardFile)
		if err := render.Dashboard(table, corr, dashPath, cfg.ChartDPI); err != nil {
			return err
		}
		fmt.Printf("\n✓ Dashboard saved as %s\n", dashPath)

		profiles, err := analysis.Segment(table, clusters, seed, maxIter)
		if err != nil {
			return err
		}
		fmt.Println("\nCustomer Segmentation:")
		for _, p := range profiles {
			fmt.Printf("  segment %d: %d transactions, mean sales %.2f, mean quantity %.2f, mean rating %.2f\n",
				p.Segment, p.Count, p.MeanSales, p.MeanQuantity, p.MeanRating)
		}

		ins := analysis.ComputeInsights(table.Records)
		fmt.Println("\nKey Findings:")
		fmt.Printf("  • Best performing branch: %s\n", ins.TopBranch)
		fmt.Printf("  • Most profitable product line: %s\n", ins.TopProductLine)
		fmt.Printf("  • Peak sales day: %s\n", ins.PeakWeekday)
		fmt.Printf("  • Average transaction value: $%.2f\n", ins.AvgTransaction)
		fmt.Printf("  • Average customer rating: %.1f/10\n", ins.AvgRating)

		sunPath := filepath.Join(outDir, render.SunburstFile)
		if err := render.Sunburst(table, sunPath); err != nil {
			return err
		}
		scatterPath := filepath.Join(outDir, render.ScatterFile)
		if err := render.Scatter(table, scatterPath); err != nil {
			return err
		}
		fmt.Printf("\n✓ Interactive charts saved as %s and %s\n", sunPath, scatterPath)

		runID := uuid.NewString()
		if debug {
			fmt.Printf("run id: %s\n", runID)
		}
		reportPath := filepath.Join(outDir, report.File)
		text := report.Build(table, profiles, ins, runID)
		if err := utils.SafeWriteFile(reportPath, []byte(text)); err != nil {
			return err
		}
		fmt.Printf("✓ Report saved as %s\n", reportPath)

		fmt.Println("\nGenerated files:")
		for _, f := range []string{dashPath, sunPath, scatterPath, reportPath} {
			fmt.Printf("  • %s\n", f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputDir, "output-dir", "o", ".", "directory for generated files")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum rows to process (0 = unlimited)")
	analyzeCmd.Flags().IntVar(&anaClusters, "clusters", analysis.DefaultClusters, "number of customer segments")
	analyzeCmd.Flags().Int64Var(&anaSeed, "seed", analysis.DefaultSeed, "random seed for segmentation")
	analyzeCmd.Flags().IntVar(&anaMaxIter, "max-iterations", analysis.DefaultMaxIterations, "segmentation iteration cap")
}
