package selection

import "github.com/abhisek/examgen/internal/llm"

// SelectionSchema defines the JSON schema for structured oracle replies.
var SelectionSchema = &llm.Schema{
	Name:        "question-selection",
	Description: "The IDs of the questions chosen for an exam paper, best first",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_ids": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Chosen question IDs, copied exactly from the candidate list",
			},
		},
		"required":             []any{"question_ids"},
		"additionalProperties": false,
	},
}
