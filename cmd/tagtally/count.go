package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/app"
	"github.com/agenthands/tagtally/internal/report"
)

var (
	legendPath   string
	planPath     string
	outPath      string
	outputFormat string
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count legend tags in a plan image",
	Long: `Run the extraction pipeline on two local images and print the counts.

Examples:
  tagtally count --legend legend.png --plan plan.jpg
  tagtally count --legend legend.png --plan plan.jpg -o json
  tagtally count --legend legend.png --plan plan.jpg --out tag_counts.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseOutputFormat(outputFormat)
		if err != nil {
			return err
		}

		legend, err := os.ReadFile(legendPath)
		if err != nil {
			return fmt.Errorf("failed to read legend: %w", err)
		}
		plan, err := os.ReadFile(planPath)
		if err != nil {
			return fmt.Errorf("failed to read plan: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		rep, err := a.Counter.Count(cmd.Context(), legend, plan)
		if err != nil {
			return err
		}

		if err := report.OutputTo(cmd.OutOrStdout(), format, report.Summarize(rep)); err != nil {
			return err
		}

		if outPath == "" {
			return nil
		}
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, rep.Counts); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return &report.ExportError{Err: err}
		}
		a.Logger.Info("Spreadsheet written", zap.String("path", outPath))
		return nil
	},
}

func init() {
	countCmd.Flags().StringVar(&legendPath, "legend", "", "legend image (PNG or JPEG)")
	countCmd.Flags().StringVar(&planPath, "plan", "", "plan image (PNG or JPEG)")
	countCmd.Flags().StringVar(&outPath, "out", "", "also write the counts to this .xlsx file")
	countCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	_ = countCmd.MarkFlagRequired("legend")
	_ = countCmd.MarkFlagRequired("plan")

	rootCmd.AddCommand(countCmd)
}
