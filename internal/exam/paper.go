package exam

import (
	"fmt"
	"time"

	"github.com/abhisek/examgen/internal/selection"
)

// Section asks for Count questions of one type from one repository.
type Section struct {
	RepoID string                 `json:"repo_id" yaml:"repo_id"`
	Type   selection.QuestionType `json:"type" yaml:"type"`
	Count  int                    `json:"count" yaml:"count"`

	// Score is the mark awarded per question.
	Score int `json:"score,omitempty" yaml:"score,omitempty"`
}

// Spec describes a paper to compose. Sections are filled in order.
type Spec struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`

	// KnowledgePoints restricts every section to questions tagged with at
	// least one of the points.
	KnowledgePoints []string `json:"knowledge_points,omitempty" yaml:"knowledge_points,omitempty"`

	// EnforceRatio selects each section per difficulty tier. Nil means
	// enforce; use RatioEnforced to read it.
	EnforceRatio *bool `json:"enforce_ratio,omitempty" yaml:"enforce_ratio,omitempty"`

	// Excludes lists question IDs no section may use.
	Excludes []string `json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// Validate checks the spec before any selection happens.
func (s Spec) Validate() error {
	if len(s.Sections) == 0 {
		return fmt.Errorf("paper %q has no sections", s.Title)
	}
	for i, sec := range s.Sections {
		if sec.Count <= 0 {
			return fmt.Errorf("section %d: count must be positive, got %d", i+1, sec.Count)
		}
		if sec.Score < 0 {
			return fmt.Errorf("section %d: score must not be negative", i+1)
		}
		if !sec.Type.Valid() {
			return fmt.Errorf("section %d: unknown question type %d", i+1, int(sec.Type))
		}
	}
	return nil
}

// RatioEnforced reports whether sections are selected per difficulty
// tier. Only an explicit enforce_ratio: false turns it off.
func (s Spec) RatioEnforced() bool {
	return s.EnforceRatio == nil || *s.EnforceRatio
}

// PaperSection is a filled section.
type PaperSection struct {
	Section
	Questions []selection.Candidate `json:"questions"`

	// Strategy names the selection stage that filled the section.
	Strategy string `json:"strategy"`
}

// Short reports how many questions the section is missing.
func (p PaperSection) Short() int {
	return max(p.Count-len(p.Questions), 0)
}

// Paper is a composed exam paper.
type Paper struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Sections  []PaperSection `json:"sections"`
	CreatedAt time.Time      `json:"created_at"`
}

// QuestionCount returns the number of questions across all sections.
func (p *Paper) QuestionCount() int {
	n := 0
	for _, s := range p.Sections {
		n += len(s.Questions)
	}
	return n
}

// TotalScore sums the per-question scores of every selected question.
func (p *Paper) TotalScore() int {
	total := 0
	for _, s := range p.Sections {
		total += s.Score * len(s.Questions)
	}
	return total
}

// Complete reports whether every section got all the questions it asked for.
func (p *Paper) Complete() bool {
	for _, s := range p.Sections {
		if s.Short() > 0 {
			return false
		}
	}
	return true
}
