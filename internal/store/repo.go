package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to recorded events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// Question is a stored exam question.
type Question struct {
	ID              string
	RepoID          string
	Type            int
	Level           int
	Stem            string
	Content         string
	KnowledgePoints []string
	CreatedAt       time.Time
}

// QuestionRepo reads and writes the question bank.
//
// List methods never return questions whose ID is in excludes. A nil or
// empty excludes slice excludes nothing.
type QuestionRepo interface {
	// Upsert inserts questions or replaces existing ones by ID, including
	// their knowledge points.
	Upsert(ctx context.Context, qs ...Question) error

	// ListByType returns every question of quType in repoID.
	ListByType(ctx context.Context, repoID string, quType int, excludes []string) ([]Question, error)

	// ListByTypeAndKnowledgePoints is ListByType restricted to questions
	// tagged with at least one of points.
	ListByTypeAndKnowledgePoints(ctx context.Context, repoID string, quType int, excludes, points []string) ([]Question, error)

	// ListRandom returns up to size questions of quType in random order.
	ListRandom(ctx context.Context, repoID string, quType int, excludes []string, size int) ([]Question, error)

	// KnowledgePoints lists the distinct primary knowledge point of the
	// questions in repoID, sorted. quType 0 matches every type.
	KnowledgePoints(ctx context.Context, repoID string, quType int) ([]string, error)

	// CountByType reports how many questions of each type repoID holds.
	CountByType(ctx context.Context, repoID string) (map[int]int, error)
}
