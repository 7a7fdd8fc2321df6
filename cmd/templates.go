package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathgen/internal/lint"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse and check the template catalog",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates (optionally filtered by grade or category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetInt("grade")
		category, _ := cmd.Flags().GetString("category")

		reg, err := loadCatalog()
		if err != nil {
			return err
		}

		var templates []problemgen.Template
		for _, t := range reg.All() {
			if grade != 0 && t.Grade != grade {
				continue
			}
			if category != "" && t.Category != category {
				continue
			}
			templates = append(templates, t)
		}
		if len(templates) == 0 {
			return fmt.Errorf("no templates found for grade %d, category %q", grade, category)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%-26s  %5s  %-14s  %5s  %s",
			"ID", "Grade", "Category", "Level", "Concept")))
		fmt.Fprintln(out, theme.Rule.Render(strings.Repeat("─", 80)))

		for _, t := range templates {
			concept := t.ConceptID
			if len(concept) > 24 {
				concept = concept[:21] + "..."
			}
			fmt.Fprintf(out, "%-26s  %5d  %-14s  %5d  %s\n",
				t.ID, t.Grade, t.Category, t.Level, concept)
		}

		fmt.Fprintf(out, "\n%d templates\n", len(templates))
		return nil
	},
}

var templatesLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Instantiate every template repeatedly and report problems",
	Long: `Build every template many times with a seeded source and report assembly
errors, validator failures (including the arithmetic check), schema violations,
degraded sampling, short option lists, fallback-pool use and repeated content.

Exits non-zero when any template has an error finding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, _ := cmd.Flags().GetInt("samples")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		verbose, _ := cmd.Flags().GetBool("verbose")

		reg, err := loadCatalog()
		if err != nil {
			return err
		}

		seed := cfg.Seed
		if seed == "" {
			seed = "lint"
		}
		report, err := lint.Run(cmd.Context(), reg.All(), lint.Options{
			Samples:     samples,
			Seed:        seed,
			Concurrency: concurrency,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, res := range report.Results {
			if len(res.Findings) == 0 {
				if verbose {
					fmt.Fprintf(out, "%s %s (%d/%d unique)\n",
						theme.Correct.Render("ok  "), res.TemplateID, res.Unique, res.Produced)
				}
				continue
			}
			for _, f := range res.Findings {
				tag := theme.Warning.Render("warn")
				if f.Severity == lint.SeverityError {
					tag = theme.Incorrect.Render("fail")
				}
				fmt.Fprintf(out, "%s %s: %s x%d: %s\n", tag, res.TemplateID, f.Kind, f.Count, f.Message)
			}
		}

		errs, warns := report.Count(lint.SeverityError), report.Count(lint.SeverityWarning)
		fmt.Fprintf(out, "\n%d templates, %d errors, %d warnings\n", len(report.Results), errs, warns)
		if errs > 0 {
			return fmt.Errorf("template lint found %d errors", errs)
		}
		return nil
	},
}

func init() {
	templatesListCmd.Flags().Int("grade", 0, "Filter by grade level")
	templatesListCmd.Flags().String("category", "", "Filter by category (e.g. fractions)")

	templatesLintCmd.Flags().Int("samples", 20, "Instances built per template")
	templatesLintCmd.Flags().Int("concurrency", 0, "Templates linted in parallel (0 = GOMAXPROCS)")
	templatesLintCmd.Flags().String("seed", "", "Seed for the lint run (overrides MATHGEN_SEED)")
	templatesLintCmd.Flags().BoolP("verbose", "v", false, "Also list templates without findings")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesLintCmd)
}
