package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer generated questions interactively (no database)",
	Long: `Generate and interactively answer questions for one grade, category and level.

This is a stateless developer tool: nothing is written to the generation log.
Answers may be given as the option label, its number, or the value itself.
Useful for evaluating question quality and testing new templates.`,
	RunE: runPreview,
}

func init() {
	scopeFlags(previewCmd)
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().String("seed", "", "Seed for reproducible output (overrides MATHGEN_SEED)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	grade, category, level := readScope(cmd)
	count, _ := cmd.Flags().GetInt("count")

	reg, err := loadCatalog()
	if err != nil {
		return err
	}

	req := problemgen.GenerateRequest{Grade: grade, Category: category, Level: level, Count: count}
	qs := newGenerator().Generate(req, reg.All())
	if len(qs) == 0 {
		return fmt.Errorf("no templates for grade %d, category %q, level %d", grade, category, level)
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Grade %d · %s · level %d", grade, category, level)))
	fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("%d questions", len(qs))))
	fmt.Fprintln(out)

	var correct int
	for i, q := range qs {
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("Question %d/%d", i+1, len(qs))))
		fmt.Fprintln(out, theme.Card.Render(renderQuestion(&q)))

		fmt.Fprint(out, "Your answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, theme.Hint.Render("(skipped)"))
			fmt.Fprintln(out)
			continue
		}

		right, _ := q.CorrectOption()
		if problemgen.CheckAnswer(answer, &q) {
			correct++
			fmt.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		} else {
			fmt.Fprintf(out, "%s Answer: %s) %s\n", theme.Incorrect.Render("✗ Wrong."), right.Label, right.Text)
		}
		fmt.Fprintln(out, theme.Subtitle.Render("Explanation: "+q.Explanation))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Summary: %d/%d correct", correct, len(qs))))
	return nil
}

func renderQuestion(q *problemgen.GeneratedQuestion) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(q.Content))
	for _, o := range q.Options {
		b.WriteString("\n")
		b.WriteString(theme.OptionLabel.Render(o.Label + ")"))
		b.WriteString(" ")
		b.WriteString(theme.Body.Render(o.Text))
	}
	return b.String()
}
