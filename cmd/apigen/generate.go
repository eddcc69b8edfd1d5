package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-apigen/pkg/orchestrator"
	"github.com/goliatone/go-apigen/pkg/transform"
)

var (
	generateSchema         string
	generateGenerator      string
	generateOutput         string
	generateExclude        string
	generateSkipValidation bool
	generateLogLevel       string
	generateQuiet          bool
	generateVerbose        bool
	generateDefaultOpIDs   bool
	generatePruneVendorExt bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the generation pipeline",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateSchema, "schema", "s", "", "OpenAPI document path or URL (required)")
	generateCmd.Flags().StringVarP(&generateGenerator, "generator", "g", "", "generator path or git URL (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (required)")
	generateCmd.Flags().StringVarP(&generateExclude, "exclude", "e", "", "glob of template files to skip")
	generateCmd.Flags().BoolVar(&generateSkipValidation, "skip-validation", false, "bypass schema validation")
	generateCmd.Flags().StringVar(&generateLogLevel, "log-level", "", "quiet, standard, or verbose")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "errors only (shorthand for --log-level quiet)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "per-stage diagnostics (shorthand for --log-level verbose)")
	generateCmd.Flags().BoolVar(&generateDefaultOpIDs, "default-operation-ids", false, "fill missing operationId fields before rendering")
	generateCmd.Flags().BoolVar(&generatePruneVendorExt, "prune-vendor-extensions", false, "strip x- keys before rendering")

	_ = generateCmd.MarkFlagRequired("schema")
	_ = generateCmd.MarkFlagRequired("generator")
	_ = generateCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(generateCmd)
}

// resolveLevel combines the --log-level flag with the boolean shorthands;
// an explicit shorthand wins over the flag.
func resolveLevel() (orchestrator.Level, error) {
	if generateQuiet && generateVerbose {
		return "", errors.New("--quiet and --verbose are mutually exclusive")
	}
	level, err := orchestrator.ParseLevel(generateLogLevel)
	if err != nil {
		return "", err
	}
	switch {
	case generateQuiet:
		level = orchestrator.LevelQuiet
	case generateVerbose:
		level = orchestrator.LevelVerbose
	}
	return level, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	level, err := resolveLevel()
	if err != nil {
		return err
	}

	var transformers []transform.Transformer
	if generatePruneVendorExt {
		transformers = append(transformers, transform.PruneVendorExtensions())
	}
	if generateDefaultOpIDs {
		transformers = append(transformers, transform.DefaultOperationIDs())
	}

	logger := orchestrator.NewLogger(level, cmd.ErrOrStderr())
	orch := orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithTransformers(transformers...),
	)

	report, err := orch.Run(cmd.Context(), orchestrator.Request{
		Schema:    generateSchema,
		Generator: generateGenerator,
		Options: orchestrator.RunOptions{
			Output:         generateOutput,
			Exclude:        generateExclude,
			SkipValidation: generateSkipValidation,
			LogLevel:       level,
		},
	})
	if err != nil {
		return errors.New(orchestrator.FormatError(err, level))
	}

	if level != orchestrator.LevelQuiet {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	}
	return nil
}
