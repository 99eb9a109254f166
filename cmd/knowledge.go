package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/selection"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "List the knowledge points of a repository",
	Long:  "List the distinct primary knowledge point of the questions in a repository, sorted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoID, _ := cmd.Flags().GetString("repo")
		typeVal, _ := cmd.Flags().GetString("type")

		var quType selection.QuestionType
		if typeVal != "" {
			var err error
			if quType, err = selection.ParseQuestionType(typeVal); err != nil {
				return err
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		points, err := s.QuestionRepo().KnowledgePoints(cmd.Context(), repoID, int(quType))
		if err != nil {
			return fmt.Errorf("list knowledge points: %w", err)
		}
		if len(points) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No knowledge points found.")
			return nil
		}
		for _, p := range points {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	knowledgeCmd.Flags().String("repo", "", "Repository (question bank) ID")
	knowledgeCmd.Flags().StringP("type", "t", "", "Only questions of this type")
	_ = knowledgeCmd.MarkFlagRequired("repo")
}
