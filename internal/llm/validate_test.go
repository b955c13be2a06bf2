package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func evalTestSchema() *Schema {
	return &Schema{
		Name:        "test-evaluation",
		Description: "test schema",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"quality": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": 5,
				},
				"feedback": map[string]any{
					"type": "string",
				},
			},
			"required":             []any{"quality", "feedback"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponseAccepts(t *testing.T) {
	err := validateResponse(evalTestSchema(), json.RawMessage(`{"quality":4,"feedback":"ok"}`))
	assert.NoError(t, err)
}

func TestValidateResponseNilSchema(t *testing.T) {
	err := validateResponse(nil, json.RawMessage(`not even json`))
	assert.NoError(t, err)
}

func TestValidateResponseRejects(t *testing.T) {
	cases := map[string]string{
		"not json":       `almost {`,
		"missing field":  `{"quality":4}`,
		"out of range":   `{"quality":9,"feedback":"ok"}`,
		"wrong type":     `{"quality":"four","feedback":"ok"}`,
		"extra property": `{"quality":4,"feedback":"ok","bonus":true}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			err := validateResponse(evalTestSchema(), json.RawMessage(payload))
			var invalid *ErrInvalidResponse
			assert.True(t, errors.As(err, &invalid), "expected ErrInvalidResponse, got %v", err)
		})
	}
}
