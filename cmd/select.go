package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/selection"
	"github.com/abhisek/examgen/internal/ui/theme"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select questions of one type from a repository",
	Example: `  examgen select --repo algebra --type single-choice --size 10 --scheme challenge
  examgen select --repo algebra --type 2 --size 5 --kp fractions --kp decimals
  examgen select --repo algebra --size 8 --ratio=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repoID, _ := cmd.Flags().GetString("repo")
		typeVal, _ := cmd.Flags().GetString("type")
		size, _ := cmd.Flags().GetInt("size")
		ratio, _ := cmd.Flags().GetBool("ratio")
		points, _ := cmd.Flags().GetStringSlice("kp")
		excludes, _ := cmd.Flags().GetStringSlice("exclude")
		schemeName, _ := cmd.Flags().GetString("scheme")
		asJSON, _ := cmd.Flags().GetBool("json")

		quType, err := selection.ParseQuestionType(typeVal)
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

		res := engine.SelectQuestions(ctx, selection.Request{
			RepoID:          repoID,
			Type:            quType,
			Excludes:        excludes,
			Size:            size,
			KnowledgePoints: points,
			EnforceRatio:    ratio,
		})

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		printSelection(cmd.OutOrStdout(), engine.Scheme(), ratio, size, res)
		return nil
	},
}

func printSelection(w io.Writer, scheme selection.Scheme, ratio bool, size int, res selection.Result) {
	if len(res.Candidates) == 0 {
		fmt.Fprintln(w, "No questions selected.")
		return
	}

	title := fmt.Sprintf("%d of %d questions", len(res.Candidates), size)
	if ratio {
		title += fmt.Sprintf("  (%s: %s)", scheme.Name, scheme.Description())
	}
	fmt.Fprintln(w, theme.Render(theme.Title, title))
	fmt.Fprintln(w, theme.Render(theme.Hint, "strategy: "+res.Strategy))
	fmt.Fprintln(w, theme.Rule(80))

	for i, c := range res.Candidates {
		level := theme.Render(theme.Level(int(c.Level)), fmt.Sprintf("%-9s", c.Level))
		fmt.Fprintf(w, "%3d  %-24s  %s  %s\n", i+1, truncate(c.ID, 24), level, truncate(c.Summary(selection.DefaultStemLimit), 40))
		if len(c.KnowledgePoints) > 0 {
			fmt.Fprintf(w, "%31s%s\n", "", theme.Render(theme.Dim, strings.Join(c.KnowledgePoints, ", ")))
		}
	}

	if short := size - len(res.Candidates); short > 0 {
		fmt.Fprintln(w, theme.Rule(80))
		fmt.Fprintln(w, theme.Render(theme.Warn, fmt.Sprintf("The bank ran out: %d short.", short)))
	}
}

func init() {
	selectCmd.Flags().String("repo", "", "Repository (question bank) ID")
	selectCmd.Flags().StringP("type", "t", "single-choice", "Question type: name or number")
	selectCmd.Flags().IntP("size", "n", 10, "Number of questions to select")
	selectCmd.Flags().Bool("ratio", true, "Select per difficulty tier according to the scheme (--ratio=false picks across the whole pool)")
	selectCmd.Flags().String("scheme", "", "Difficulty scheme: "+strings.Join(selection.SchemeNames(), ", "))
	selectCmd.Flags().StringSlice("kp", nil, "Restrict to questions tagged with any of these knowledge points")
	selectCmd.Flags().StringSlice("exclude", nil, "Question IDs to exclude")
	selectCmd.Flags().Bool("json", false, "Print the result as JSON")
	selectCmd.Flags().String("metrics-out", "", "Write Prometheus metrics to this textfile")
	_ = selectCmd.MarkFlagRequired("repo")
}
