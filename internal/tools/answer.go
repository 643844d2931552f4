package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// AnswerTool is the pass-through capability: the question goes straight to
// the model and its text comes straight back.
type AnswerTool struct {
	Model llms.Model
}

func NewAnswerTool(model llms.Model) *AnswerTool {
	return &AnswerTool{Model: model}
}

func (a *AnswerTool) Name() string {
	return "answer"
}

func (a *AnswerTool) Description() string {
	return "Answer a factual or open question directly, without any other tool."
}

func (a *AnswerTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question to answer.",
			},
		},
		"required": []string{"question"},
	}
}

func (a *AnswerTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", &AdapterError{Capability: a.Name(), Kind: ErrModel, Err: fmt.Errorf("invalid input: %v", err)}
	}

	question := strings.TrimSpace(args.Question)
	if question == "" {
		return "", &AdapterError{Capability: a.Name(), Kind: ErrModel, Err: errors.New("empty question")}
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, a.Model, question)
	if err != nil {
		return "", &AdapterError{Capability: a.Name(), Kind: ErrModel, Err: err}
	}

	answer := strings.TrimSpace(resp)
	if answer == "" {
		return "", &AdapterError{Capability: a.Name(), Kind: ErrModel, Err: errors.New("empty model response")}
	}
	return answer, nil
}
