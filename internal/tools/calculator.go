package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CalculatorTool is the pure arithmetic capability. It never calls out to the
// model.
type CalculatorTool struct{}

func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (c *CalculatorTool) Name() string {
	return "calculate"
}

func (c *CalculatorTool) Description() string {
	return "Perform arithmetic on two numbers. Supported operators: add, subtract, multiply, divide."
}

func (c *CalculatorTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"op": map[string]any{
				"type":        "string",
				"enum":        []string{"add", "subtract", "multiply", "divide"},
				"description": "The arithmetic operator to apply.",
			},
			"a": map[string]any{
				"type":        "string",
				"description": "The first operand.",
			},
			"b": map[string]any{
				"type":        "string",
				"description": "The second operand.",
			},
		},
		"required": []string{"op", "a", "b"},
	}
}

func (c *CalculatorTool) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Op string `json:"op"`
		A  string `json:"a"`
		B  string `json:"b"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", c.fail(fmt.Errorf("invalid input: %v", err))
	}

	a, err := strconv.ParseFloat(strings.TrimSpace(args.A), 64)
	if err != nil {
		return "", c.fail(fmt.Errorf("operand %q is not a number", args.A))
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(args.B), 64)
	if err != nil {
		return "", c.fail(fmt.Errorf("operand %q is not a number", args.B))
	}

	var result float64
	switch strings.ToLower(strings.TrimSpace(args.Op)) {
	case "add", "addition", "+":
		result = a + b
	case "subtract", "subtraction", "-":
		result = a - b
	case "multiply", "multiplication", "*":
		result = a * b
	case "divide", "division", "/":
		if b == 0 {
			return "", c.fail(errors.New("division by zero"))
		}
		result = a / b
	default:
		return "", c.fail(fmt.Errorf("unsupported operator %q", args.Op))
	}

	return strconv.FormatFloat(result, 'f', -1, 64), nil
}

func (c *CalculatorTool) fail(err error) error {
	return &AdapterError{Capability: c.Name(), Kind: ErrArithmetic, Err: err}
}
