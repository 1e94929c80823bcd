package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kpiboard/adapters/excel"
	"kpiboard/adapters/render"
	"kpiboard/domain/table"
	"kpiboard/internal/insight"
	"kpiboard/internal/sampledata"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kpictl",
		Short: "Inspect spreadsheets and render charts from the command line",
	}

	rootCmd.AddCommand(
		newInspectCmd(),
		newChartCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Classify columns and compute KPIs and summary statistics",
		Long: `Ingest a spreadsheet or CSV file, classify its columns and print the
table profile, per-column KPIs and summary statistics.

Example: kpictl inspect sales.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")

	return cmd
}

func runInspect(path string, asJSON bool) error {
	reader := excel.NewReader(0)
	engine := insight.NewEngine(insight.Config{})

	tbl, stats, err := reader.ReadFile(path)
	if err != nil {
		return err
	}

	profile := engine.Profile(tbl)
	summaries := engine.Describe(tbl)

	kpis := make([]insight.KPIResult, 0, len(profile.Fields))
	for _, field := range profile.Fields {
		if field.Type != table.TypeNumeric {
			continue
		}
		result, err := engine.KPIs(tbl, field.Name)
		if err != nil {
			return err
		}
		kpis = append(kpis, result)
	}

	if asJSON {
		return printJSON(map[string]interface{}{
			"file":        filepath.Base(path),
			"source_rows": stats.TotalRows,
			"truncated":   stats.Truncated,
			"profile":     profile,
			"kpis":        kpis,
			"summary":     summaries,
		})
	}

	fmt.Printf("📊 %s\n", filepath.Base(path))
	fmt.Printf("Rows: %d", profile.Rows)
	if stats.Truncated {
		fmt.Printf(" (of %d, truncated)", stats.TotalRows)
	}
	fmt.Printf("\nColumns: %d (%d numeric)\n", profile.Columns, profile.NumericColumns)

	fmt.Printf("\nCOLUMNS:\n")
	for i, field := range profile.Fields {
		fmt.Printf("%d. %s (%s, %d values)\n", i+1, field.Name, field.Type, field.NonAbsent)
	}

	if len(kpis) > 0 {
		fmt.Printf("\nKPIs:\n")
		for _, k := range kpis {
			fmt.Printf("• %s: count=%d sum=%.2f", k.Column, k.Count, k.Sum)
			if k.Mean != nil && k.Min != nil && k.Max != nil {
				fmt.Printf(" mean=%.2f min=%.2f max=%.2f", *k.Mean, *k.Min, *k.Max)
			}
			fmt.Println()
		}
	}

	if len(summaries) > 0 {
		fmt.Printf("\nSUMMARY STATISTICS:\n")
		for _, s := range summaries {
			fmt.Printf("• %s: count=%d mean=%s std=%s min=%s p25=%s median=%s p75=%s max=%s\n",
				s.Column, s.Count,
				fmtStat(s.Mean), fmtStat(s.Std), fmtStat(s.Min), fmtStat(s.P25),
				fmtStat(s.Median), fmtStat(s.P75), fmtStat(s.Max))
		}
	}

	return nil
}

func newChartCmd() *cobra.Command {
	var kind, column, groupBy, outPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "Build a chart from a spreadsheet and write it as PNG",
		Long: `Build one chart from a spreadsheet or CSV file and write the rendered
PNG to --out. With --json the chart series is printed instead of rendered.

Example: kpictl chart sales.xlsx --kind bar --column Sales --group-by Region -o sales.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(args[0], kind, column, groupBy, outPath, asJSON)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "bar", "Chart kind: bar, line, histogram or pie")
	cmd.Flags().StringVar(&column, "column", "", "Numeric value column")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Grouping or x-axis column")
	cmd.Flags().StringVarP(&outPath, "out", "o", "chart.png", "Output PNG path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the chart series as JSON instead of rendering")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func runChart(path, kind, column, groupBy, outPath string, asJSON bool) error {
	reader := excel.NewReader(0)
	engine := insight.NewEngine(insight.Config{})

	tbl, _, err := reader.ReadFile(path)
	if err != nil {
		return err
	}

	spec, err := engine.BuildChart(tbl, insight.ChartRequest{
		Kind:    kind,
		Column:  column,
		GroupBy: groupBy,
	})
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(spec)
	}

	png, err := render.NewRenderer(0, 0).PNG(spec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, png, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("✅ Wrote %s (%s, %d points)\n", outPath, spec.Title, len(spec.X))
	return nil
}

func newSampleCmd() *cobra.Command {
	var rows int
	var seed int64
	var start, outPath string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a demo sales dataset for trying the dashboard",
		Long: `Generate a deterministic demo sales dataset and write it as .xlsx or
.csv, chosen by the output extension.

Example: kpictl sample -o sales-demo.xlsx --rows 500 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(rows, seed, start, outPath)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 200, "Number of rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().StringVar(&start, "start", "2025-01-01", "First order date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "sales-demo.xlsx", "Output path (.xlsx or .csv)")

	return cmd
}

func runSample(rows int, seed int64, start, outPath string) error {
	startDate, err := time.ParseInLocation("2006-01-02", start, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid --start (expected YYYY-MM-DD): %w", err)
	}

	cfg := sampledata.DefaultConfig()
	cfg.Rows = rows
	cfg.Seed = seed
	cfg.StartDate = startDate

	ds, err := sampledata.Generate(cfg)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".csv":
		err = sampledata.WriteCSV(outPath, ds)
	case ".xlsx":
		err = sampledata.WriteXLSX(outPath, ds)
	default:
		return fmt.Errorf("unsupported output extension %q, use .xlsx or .csv", ext)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✅ Wrote %s (%d columns, %d rows)\n", outPath, len(ds.Headers), len(ds.Rows))
	return nil
}

func printJSON(v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func fmtStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
