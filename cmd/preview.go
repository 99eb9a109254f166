package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/selection"
	"github.com/abhisek/examgen/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the oracle prompt for one difficulty tier",
	Long: `Render the prompt the oracle would receive for one tier of a selection.

With --ask the prompt is sent to the configured LLM and the reply is shown
alongside the IDs the parser accepts from it. Nothing is recorded in the
question bank.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("repo", "", "Repository (question bank) ID (required)")
	previewCmd.Flags().StringP("type", "t", "single-choice", "Question type: name or number")
	previewCmd.Flags().String("tier", "easy", "Difficulty tier: easy, medium, hard, very-hard or a number")
	previewCmd.Flags().IntP("count", "n", 3, "Number of questions to ask for")
	previewCmd.Flags().StringSlice("kp", nil, "Knowledge point allow-list")
	previewCmd.Flags().Bool("ask", false, "Send the prompt to the LLM")
	_ = previewCmd.MarkFlagRequired("repo")
}

func runPreview(cmd *cobra.Command, args []string) error {
	repoID, _ := cmd.Flags().GetString("repo")
	typeVal, _ := cmd.Flags().GetString("type")
	tierVal, _ := cmd.Flags().GetString("tier")
	count, _ := cmd.Flags().GetInt("count")
	points, _ := cmd.Flags().GetStringSlice("kp")
	ask, _ := cmd.Flags().GetBool("ask")

	quType, err := selection.ParseQuestionType(typeVal)
	if err != nil {
		return err
	}
	tier, err := parseTier(tierVal)
	if err != nil {
		return err
	}
	scheme, err := selection.LookupScheme(cfg.Selection.Scheme)
	if err != nil {
		return err
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	repo := selection.NewStoreRepository(s.QuestionRepo())
	var pool []selection.Candidate
	if len(points) > 0 {
		pool, err = repo.ListByTypeAndKnowledgePoints(ctx, repoID, quType, nil, points)
	} else {
		pool, err = repo.ListByType(ctx, repoID, quType, nil)
	}
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}
	batch := selection.Partition(pool, selection.Scheme{Tiers: []selection.TierRatio{{Tier: tier, Ratio: 1}}})[tier]
	if len(batch) == 0 {
		return fmt.Errorf("no %s %s questions in %q", tier, quType, repoID)
	}

	prompt := selection.Prompt{
		Type:              quType,
		Count:             count,
		Tier:              tier,
		SchemeDescription: scheme.Description(),
		KnowledgePoints:   points,
		Candidates:        batch,
		StemLimit:         cfg.Selection.StemLimit,
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, theme.Render(theme.Heading, "PROMPT"))
	fmt.Fprintln(w, theme.Rule(60))
	fmt.Fprint(w, prompt.Render())

	if !ask {
		return nil
	}
	if !cfg.OracleEnabled() {
		return fmt.Errorf("--ask needs an LLM provider key")
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	raw, err := selection.NewLLMOracle(provider, cfg.OracleConfig()).Rank(ctx, prompt)
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	index := make(map[string]selection.Candidate, len(batch))
	for _, c := range batch {
		index[c.ID] = c
	}
	ids := selection.ParseIDs(raw, index)

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Render(theme.Heading, "REPLY"))
	fmt.Fprintln(w, theme.Rule(60))
	fmt.Fprintln(w, raw)
	fmt.Fprintln(w, theme.Rule(60))
	if len(ids) == 0 {
		fmt.Fprintln(w, theme.Render(theme.Bad, "✗ No known IDs in the reply: the engine would pick at random."))
		return nil
	}
	fmt.Fprintln(w, theme.Render(theme.Good, fmt.Sprintf("✓ Accepted %d of %d: %s", min(len(ids), count), count, strings.Join(ids[:min(len(ids), count)], ", "))))
	return nil
}

// parseTier accepts a tier name or number.
func parseTier(s string) (selection.Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t := selection.TierEasy; t <= selection.TierVeryHard; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n > 0 {
		return selection.Tier(n), nil
	}
	return 0, fmt.Errorf("invalid tier %q", s)
}
