package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is a question difficulty level. Lower is easier.
type Tier int

const (
	TierEasy     Tier = 1
	TierMedium   Tier = 2
	TierHard     Tier = 3
	TierVeryHard Tier = 4
)

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierVeryHard:
		return "very-hard"
	default:
		return "level-" + strconv.Itoa(int(t))
	}
}

// QuestionType is the answer format of a question.
type QuestionType int

const (
	SingleChoice QuestionType = 1
	MultiChoice  QuestionType = 2
	TrueFalse    QuestionType = 3
	ShortAnswer  QuestionType = 4
	FillInBlank  QuestionType = 5
)

var questionTypeNames = map[QuestionType]string{
	SingleChoice: "single-choice",
	MultiChoice:  "multi-choice",
	TrueFalse:    "true-false",
	ShortAnswer:  "short-answer",
	FillInBlank:  "fill-in-blank",
}

func (q QuestionType) String() string {
	if name, ok := questionTypeNames[q]; ok {
		return name
	}
	return "type-" + strconv.Itoa(int(q))
}

// Valid reports whether q is a known question type.
func (q QuestionType) Valid() bool {
	_, ok := questionTypeNames[q]
	return ok
}

func (q QuestionType) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText accepts anything ParseQuestionType does.
func (q *QuestionType) UnmarshalText(b []byte) error {
	v, err := ParseQuestionType(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// ParseQuestionType accepts a type name ("single-choice") or its number ("1").
func ParseQuestionType(s string) (QuestionType, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := questionTypeNames[QuestionType(n)]; ok {
			return QuestionType(n), nil
		}
		return 0, fmt.Errorf("unknown question type %d", n)
	}
	for qt, name := range questionTypeNames {
		if name == s {
			return qt, nil
		}
	}
	return 0, fmt.Errorf("unknown question type %q", s)
}

// Candidate is a question eligible for selection. Candidates are
// snapshots taken once per request and never modified.
type Candidate struct {
	ID    string       `json:"id"`
	Level Tier         `json:"level"`
	Type  QuestionType `json:"type"`

	// Stem is the short question text. May be empty, in which case
	// Content stands in for it.
	Stem    string `json:"stem,omitempty"`
	Content string `json:"content,omitempty"`

	KnowledgePoints []string `json:"knowledge_points,omitempty"`
}

// Summary returns the stem, or the content truncated to limit runes with
// an ellipsis when the stem is empty.
func (c Candidate) Summary(limit int) string {
	if c.Stem != "" {
		return c.Stem
	}
	r := []rune(c.Content)
	if limit <= 0 || len(r) <= limit {
		return c.Content
	}
	return string(r[:limit]) + "..."
}

// Request describes one selection call.
type Request struct {
	RepoID string
	Type   QuestionType

	// Excludes lists question IDs that must not be selected.
	Excludes []string

	// Size is the number of questions wanted.
	Size int

	// KnowledgePoints restricts the pool to questions tagged with at
	// least one of these points. Empty means no restriction.
	KnowledgePoints []string

	// EnforceRatio selects per difficulty tier according to the scheme.
	EnforceRatio bool
}

// Result is the outcome of a selection call.
type Result struct {
	// Candidates holds at most Request.Size questions, fewer only when the
	// pool ran out.
	Candidates []Candidate `json:"questions"`

	// Strategy names the cascade stage that produced Candidates.
	Strategy string `json:"strategy"`
}

// IDs returns the selected question IDs in order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		ids[i] = c.ID
	}
	return ids
}
