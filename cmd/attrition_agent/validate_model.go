package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfandoo/Attrition-Predict/internal/observability"
	"github.com/alfandoo/Attrition-Predict/internal/schemas"
	embedded "github.com/alfandoo/Attrition-Predict/schemas"
)

func newValidateModelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-model",
		Short: "Check a model artifact against the schema and the feature layout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := observability.NewPrinter(cmd.OutOrStdout())

			// Schema pass first so every violation is listed, not just the first.
			// Read and decode failures are reported by the load below.
			var ve *schemas.ValidationError
			if err := schemas.ValidateFile(embedded.ForestModel, a.cfg.ModelPath); errors.As(err, &ve) {
				printer.PrintSchemaViolations(a.cfg.ModelPath, ve.Errors)
				return fmt.Errorf("invalid model %s: %d schema violations", a.cfg.ModelPath, len(ve.Errors))
			}

			_, forest, err := a.loadService()
			if err != nil {
				return err
			}
			printer.PrintModel(observability.ModelInfo{
				Path:       a.cfg.ModelPath,
				Trees:      forest.Trees(),
				Nodes:      forest.Nodes(),
				Features:   forest.FeatureNames(),
				NumClasses: len(forest.Classes()),
			})
			return nil
		},
	}
}
