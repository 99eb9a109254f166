package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/examgen/internal/exam"
	"github.com/abhisek/examgen/internal/selection"
	"github.com/abhisek/examgen/internal/ui/theme"
)

var composeCmd = &cobra.Command{
	Use:   "compose <spec.yaml>",
	Short: "Compose an exam paper from a YAML or JSON paper spec",
	Long: `Compose an exam paper section by section.

The spec names the sections in order; a question used by one section is
excluded from the rest. Sections follow the difficulty scheme unless
enforce_ratio is false:

  title: Algebra midterm
  knowledge_points: [fractions]
  sections:
    - {repo_id: algebra, type: single-choice, count: 10, score: 2}
    - {repo_id: algebra, type: true-false, count: 5, score: 1}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemeName, _ := cmd.Flags().GetString("scheme")
		asJSON, _ := cmd.Flags().GetBool("json")

		spec, err := readPaperSpec(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		engine, m, err := buildEngine(ctx, s, schemeName)
		if err != nil {
			return err
		}
		defer flushMetrics(cmd, m)

		paper, err := exam.NewComposer(engine, logger).Compose(ctx, spec)
		if err != nil {
			return fmt.Errorf("compose paper: %w", err)
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), paper)
		}
		printPaper(cmd.OutOrStdout(), paper)
		return nil
	},
}

// readPaperSpec parses a paper spec. YAML is a superset of JSON, so one
// decoder covers both.
func readPaperSpec(path string) (exam.Spec, error) {
	var spec exam.Spec
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("read paper spec: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("parse paper spec %s: %w", path, err)
	}
	return spec, nil
}

func printPaper(w io.Writer, p *exam.Paper) {
	title := p.Title
	if title == "" {
		title = "Untitled paper"
	}
	fmt.Fprintln(w, theme.Render(theme.Title, title))
	fmt.Fprintln(w, theme.Render(theme.Hint, fmt.Sprintf("paper %s  ·  %d questions  ·  %d points",
		p.ID, p.QuestionCount(), p.TotalScore())))

	for i, sec := range p.Sections {
		fmt.Fprintln(w)
		heading := fmt.Sprintf("Section %d: %s from %s (%d/%d, %s)",
			i+1, sec.Type, sec.RepoID, len(sec.Questions), sec.Count, sec.Strategy)
		fmt.Fprintln(w, theme.Render(theme.Heading, heading))
		fmt.Fprintln(w, theme.Rule(72))
		for j, q := range sec.Questions {
			level := theme.Render(theme.Level(int(q.Level)), fmt.Sprintf("%-9s", q.Level))
			fmt.Fprintf(w, "%3d  %s  %s\n", j+1, level, truncate(q.Summary(selection.DefaultStemLimit), 56))
		}
		if short := sec.Short(); short > 0 {
			fmt.Fprintln(w, theme.Render(theme.Warn, fmt.Sprintf("     %d short: the bank ran out", short)))
		}
	}

	if !p.Complete() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Render(theme.Bad, "Paper is incomplete."))
	}
}

func init() {
	composeCmd.Flags().String("scheme", "", "Difficulty scheme (overrides selection.scheme)")
	composeCmd.Flags().Bool("json", false, "Print the paper as JSON")
	composeCmd.Flags().String("metrics-out", "", "Write Prometheus metrics to this textfile")
}
