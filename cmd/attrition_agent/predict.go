package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/observability"
)

func newPredictCmd(a *app) *cobra.Command {
	var (
		csvPath    string
		recordPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a CSV file or a JSON record offline",
		Long: "Score employees without starting the server. --csv takes a file in the same layout " +
			"as POST /predict_csv; --record takes a JSON object as accepted by POST /predict_api.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (csvPath == "") == (recordPath == "") {
				return fmt.Errorf("exactly one of --csv or --record is required")
			}
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (use text or json)", format)
			}

			svc, _, err := a.loadService()
			if err != nil {
				return err
			}

			var result any
			if csvPath != "" {
				f, err := os.Open(csvPath)
				if err != nil {
					return fmt.Errorf("failed to open CSV: %w", err)
				}
				defer f.Close()

				resp, err := svc.PredictCSV(cmd.Context(), f)
				if err != nil {
					return err
				}
				if format == "text" {
					observability.NewPrinter(cmd.OutOrStdout()).PrintBatch(resp)
					return nil
				}
				result = resp
			} else {
				data, err := os.ReadFile(recordPath)
				if err != nil {
					return fmt.Errorf("failed to read record: %w", err)
				}
				var rec features.Record
				if err := json.Unmarshal(data, &rec); err != nil {
					return fmt.Errorf("failed to parse record: %w", err)
				}

				resp, err := svc.PredictRecord(cmd.Context(), rec)
				if err != nil {
					return err
				}
				if format == "text" {
					observability.NewPrinter(cmd.OutOrStdout()).PrintPrediction(resp)
					return nil
				}
				result = resp
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to a CSV file of employees")
	cmd.Flags().StringVar(&recordPath, "record", "", "Path to a JSON file holding one employee record")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
