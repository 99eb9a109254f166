package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/selection"
	"github.com/abhisek/examgen/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many questions of each type a repository holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoID, _ := cmd.Flags().GetString("repo")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.QuestionRepo().CountByType(cmd.Context(), repoID)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintf(w, "Repository %q holds no questions.\n", repoID)
			return nil
		}

		types := make([]int, 0, len(counts))
		for t := range counts {
			types = append(types, t)
		}
		sort.Ints(types)

		fmt.Fprintln(w, theme.Render(theme.Title, "Repository "+repoID))
		fmt.Fprintln(w, theme.Rule(32))
		total := 0
		for _, t := range types {
			fmt.Fprintf(w, "%-20s  %8d\n", selection.QuestionType(t), counts[t])
			total += counts[t]
		}
		fmt.Fprintln(w, theme.Rule(32))
		fmt.Fprintf(w, "%-20s  %8d\n", "TOTAL", total)
		return nil
	},
}

func init() {
	statsCmd.Flags().String("repo", "", "Repository (question bank) ID")
	_ = statsCmd.MarkFlagRequired("repo")
}
