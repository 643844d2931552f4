package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/meera/sahay/internal/observability"
	"github.com/meera/sahay/internal/plan"
	"github.com/tmc/langchaingo/llms"
)

// Decomposer turns a raw user utterance into a validated Plan. It makes a
// single outbound model call carrying the propose_plan tool; everything the
// model returns is parsed and structurally checked before execution.
type Decomposer struct {
	Model   llms.Model
	Prompts *PromptManager
	Logger  *observability.Logger
}

func NewDecomposer(model llms.Model, prompts *PromptManager, logger *observability.Logger) *Decomposer {
	return &Decomposer{
		Model:   model,
		Prompts: prompts,
		Logger:  logger,
	}
}

// proposedStep is the JSON shape the model submits per step. Argument values
// may arrive as strings or numbers; they are normalized to strings.
type proposedStep struct {
	Index      int            `json:"index"`
	Capability string         `json:"capability"`
	Arguments  map[string]any `json:"arguments"`
	DependsOn  *int           `json:"depends_on"`
}

func (d *Decomposer) Decompose(ctx context.Context, chatID, utterance string) (*plan.Plan, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(d.Prompts.GetPlannerPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(utterance)},
		},
	}

	resp, err := d.Model.GenerateContent(ctx, messages, llms.WithTools(proposePlanTools()))
	if err != nil {
		return nil, &plan.DecompositionError{Reason: "model call failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &plan.DecompositionError{Reason: "empty model response"}
	}

	choice := resp.Choices[0]
	d.Logger.LogLLM(chatID, utterance, choice.Content, choice.ToolCalls)

	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil || tc.FunctionCall.Name != "propose_plan" {
			continue
		}
		p, err := parsePlan(tc.FunctionCall.Arguments)
		if err != nil {
			return nil, &plan.DecompositionError{Reason: "unparseable plan", Err: err}
		}
		if err := plan.Validate(p); err != nil {
			return nil, &plan.DecompositionError{Reason: "structurally invalid plan", Err: err}
		}
		d.Logger.LogPlan(chatID, p)
		return p, nil
	}

	return nil, &plan.DecompositionError{Reason: "model returned no plan"}
}

func parsePlan(arguments string) (*plan.Plan, error) {
	var raw struct {
		Steps []proposedStep `json:"steps"`
	}
	if err := json.Unmarshal([]byte(arguments), &raw); err != nil {
		return nil, fmt.Errorf("parse propose_plan arguments: %v", err)
	}

	p := &plan.Plan{Steps: make([]plan.SubTask, 0, len(raw.Steps))}
	for _, s := range raw.Steps {
		args := make(map[string]string, len(s.Arguments))
		for name, value := range s.Arguments {
			str, err := argumentString(value)
			if err != nil {
				return nil, fmt.Errorf("step %d argument %q: %v", s.Index, name, err)
			}
			args[name] = str
		}
		p.Steps = append(p.Steps, plan.SubTask{
			Index:      s.Index,
			Capability: plan.Capability(strings.ToLower(strings.TrimSpace(s.Capability))),
			Arguments:  args,
			DependsOn:  s.DependsOn,
		})
	}
	return p, nil
}

func argumentString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

func proposePlanTools() []llms.Tool {
	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "propose_plan",
				Description: "Submit the ordered list of steps that fulfil the user's request.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"steps": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"index": map[string]any{
										"type":        "integer",
										"description": "0-based position of the step; also its execution order.",
									},
									"capability": map[string]any{
										"type": "string",
										"enum": []string{"calculate", "translate", "answer"},
									},
									"arguments": map[string]any{
										"type":        "object",
										"description": "Capability arguments. Use {{step:N}} to reference the result of step N.",
									},
									"depends_on": map[string]any{
										"type":        "integer",
										"description": "Index of the prior step whose result an argument references. Omit when independent.",
									},
								},
								"required": []string{"index", "capability", "arguments"},
							},
						},
					},
					"required": []string{"steps"},
				},
			},
		},
	}
}
