package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/examgen/internal/selection"
	"github.com/abhisek/examgen/internal/store"
	"github.com/abhisek/examgen/internal/ui/theme"
)

// bankFile is the on-disk question bank format.
type bankFile struct {
	RepoID    string         `yaml:"repo_id"`
	Questions []bankQuestion `yaml:"questions"`
}

type bankQuestion struct {
	ID              string                 `yaml:"id"`
	RepoID          string                 `yaml:"repo_id"`
	Type            selection.QuestionType `yaml:"type"`
	Level           int                    `yaml:"level"`
	Stem            string                 `yaml:"stem"`
	Content         string                 `yaml:"content"`
	KnowledgePoints []string               `yaml:"knowledge_points"`
}

var importCmd = &cobra.Command{
	Use:   "import <bank.yaml>",
	Short: "Import questions from a YAML or JSON bank file",
	Long: `Import questions into the bank, replacing questions with the same ID.

  repo_id: algebra
  questions:
    - id: alg-001
      type: single-choice
      level: 1
      stem: Solve x + 2 = 5
      knowledge_points: [linear equations]

Questions without an id get a generated one. A question-level repo_id
overrides the file's.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qs, err := readBank(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.QuestionRepo().Upsert(cmd.Context(), qs...); err != nil {
			return fmt.Errorf("import questions: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), theme.Render(theme.Good, fmt.Sprintf("Imported %d questions.", len(qs))))
		return nil
	},
}

// readBank parses and checks a bank file.
func readBank(path string) ([]store.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	var bank bankFile
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse bank %s: %w", path, err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("bank %s holds no questions", path)
	}

	qs := make([]store.Question, 0, len(bank.Questions))
	for i, bq := range bank.Questions {
		q := store.Question{
			ID:              bq.ID,
			RepoID:          bq.RepoID,
			Type:            int(bq.Type),
			Level:           bq.Level,
			Stem:            bq.Stem,
			Content:         bq.Content,
			KnowledgePoints: bq.KnowledgePoints,
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.RepoID == "" {
			q.RepoID = bank.RepoID
		}

		switch {
		case q.RepoID == "":
			return nil, fmt.Errorf("question %d (%s): no repo_id", i+1, q.ID)
		case !bq.Type.Valid():
			return nil, fmt.Errorf("question %d (%s): missing or unknown type", i+1, q.ID)
		case q.Level < 1:
			return nil, fmt.Errorf("question %d (%s): level must be at least 1", i+1, q.ID)
		case q.Stem == "" && q.Content == "":
			return nil, fmt.Errorf("question %d (%s): needs a stem or content", i+1, q.ID)
		}
		qs = append(qs, q)
	}
	return qs, nil
}
