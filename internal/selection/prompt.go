package selection

import (
	"fmt"
	"strings"
)

// DefaultStemLimit is the number of content runes shown for a candidate
// that has no stem.
const DefaultStemLimit = 50

const systemPrompt = `You are an experienced exam author assembling a test paper.

Rules:
- Choose questions only from the candidate list you are given.
- Prefer questions that cover different knowledge points and do not repeat each other.
- Prefer clearly worded questions with a single unambiguous answer.
- Respect the difficulty distribution you are told about.
- Never invent question IDs.`

// Prompt is everything the oracle needs to rank one batch of candidates.
type Prompt struct {
	// Type is the question type of every candidate.
	Type QuestionType

	// Count is how many questions to pick.
	Count int

	// Tier is the difficulty level the batch belongs to. Zero means the
	// batch mixes levels.
	Tier Tier

	// SchemeDescription describes the paper's overall difficulty
	// distribution, e.g. "easy 50%, medium 30%, hard 20%".
	SchemeDescription string

	// KnowledgePoints, when non-empty, is the allow-list the picks must
	// come from.
	KnowledgePoints []string

	Candidates []Candidate

	// StemLimit caps the content shown for stem-less candidates.
	StemLimit int
}

// Render builds the user message listing the candidates.
func (p Prompt) Render() string {
	limit := p.StemLimit
	if limit <= 0 {
		limit = DefaultStemLimit
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Question type: %s\n", p.Type)
	if p.Tier > 0 {
		fmt.Fprintf(&b, "Difficulty level: %s\n", p.Tier)
	}
	if p.SchemeDescription != "" {
		fmt.Fprintf(&b, "Paper difficulty distribution: %s\n", p.SchemeDescription)
	}
	fmt.Fprintf(&b, "Pick exactly %d of the %d candidates below.\n", p.Count, len(p.Candidates))

	if len(p.KnowledgePoints) > 0 {
		b.WriteString("\nKnowledge point constraint:\n")
		for _, kp := range p.KnowledgePoints {
			fmt.Fprintf(&b, "- %s\n", kp)
		}
		b.WriteString("Only choose questions that cover at least one of these knowledge points.\n")
	}

	b.WriteString("\nCandidates:\n")
	for _, c := range p.Candidates {
		fmt.Fprintf(&b, "ID: %s\n", c.ID)
		fmt.Fprintf(&b, "Stem: %s\n", oneLine(c.Summary(limit)))
		if len(c.KnowledgePoints) > 0 {
			fmt.Fprintf(&b, "Knowledge points: %s\n", strings.Join(c.KnowledgePoints, ", "))
		}
		fmt.Fprintf(&b, "Level: %s\n", c.Level)
		b.WriteString("---\n")
	}

	return b.String()
}

// oneLine collapses line breaks so one candidate field stays on one line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
