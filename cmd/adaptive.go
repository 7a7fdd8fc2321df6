package cmd

import (
	"time"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/spf13/cobra"
)

var adaptiveCmd = &cobra.Command{
	Use:   "adaptive",
	Short: "Pick one question at an adaptive difficulty level",
	Long: `Generate a single question for a grade and category. The level is clamped
to 1-10 before templates are matched, so callers can step it up or down freely.

Prints the question as a JSON object, or null when no template matches.`,
	RunE: runAdaptive,
}

func init() {
	scopeFlags(adaptiveCmd)
	adaptiveCmd.Flags().String("seed", "", "Seed for reproducible output (overrides MATHGEN_SEED)")
	adaptiveCmd.Flags().Bool("pretty", false, "Indent the JSON output")
	adaptiveCmd.Flags().Bool("no-log", false, "Do not record this run in the generation log")
}

func runAdaptive(cmd *cobra.Command, args []string) error {
	grade, category, level := readScope(cmd)
	pretty, _ := cmd.Flags().GetBool("pretty")
	noLog, _ := cmd.Flags().GetBool("no-log")

	reg, err := loadCatalog()
	if err != nil {
		return err
	}

	started := time.Now()
	gen := newGenerator()
	q, report := gen.SelectAdaptiveWithReport(grade, category, level, reg.All())
	if !noLog {
		req := problemgen.GenerateRequest{Grade: grade, Category: category, Level: gen.ClampLevel(level), Count: 1}
		recordGeneration(cmd.Context(), "adaptive", req, report, started)
	}

	return writeJSON(cmd, q, pretty)
}
