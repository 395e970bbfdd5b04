// Package main provides the entry point for the attrition prediction service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alfandoo/Attrition-Predict/internal/config"
	"github.com/alfandoo/Attrition-Predict/internal/observability"
)

// app carries state shared by every subcommand once the root command has run.
type app struct {
	configPath string
	modelPath  string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "attrition_agent",
		Short: "Employee Attrition Prediction Server",
		Long: "attrition_agent scores employee records with a pre-trained random forest, " +
			"either over HTTP (single JSON records and CSV batches) or offline from the command line.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.modelPath, "model", "", "Path to the forest model artifact (overrides config and MODEL_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newPredictCmd(a),
		newValidateModelCmd(a),
		newIssueTokenCmd(a),
	)
	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.modelPath != "" {
		cfg.ModelPath = a.modelPath
	}
	if a.verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
