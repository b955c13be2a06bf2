package tutor

import "github.com/moussahe/schoolaris-revision/internal/llm"

// questionSchema constrains the question-generation response.
var questionSchema = &llm.Schema{
	Name:        "revision-question",
	Description: "A single short revision question with its expected answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the child, one or two sentences, plain text",
			},
			"expected_answer": map[string]any{
				"type":        "string",
				"description": "The model answer, short and concrete, as a child would phrase it",
			},
		},
		"required":             []any{"question", "expected_answer"},
		"additionalProperties": false,
	},
}

// evaluationSchema constrains the answer-grading response. Quality is
// bounded 0-5 at the schema level so an out-of-domain grade fails
// validation inside the provider instead of reaching the scheduler.
var evaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Grading of a child's answer on the 0-5 recall quality scale",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quality": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     5,
				"description": "0 = no recall at all, 3 = correct with effort, 5 = perfect recall",
			},
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer is substantially correct (quality >= 3)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two encouraging sentences for the child, naming what was right and what to fix",
			},
		},
		"required":             []any{"quality", "is_correct", "feedback"},
		"additionalProperties": false,
	},
}
