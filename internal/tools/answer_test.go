package tools

import (
	"context"
	"errors"
	"testing"
)

func TestAnswerTool_ReturnsModelText(t *testing.T) {
	model := &stubModel{response: "  Rome\n"}
	ans := NewAnswerTool(model)

	got, err := ans.Execute(context.Background(), `{"question":"What is the capital of Italy?"}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "Rome" {
		t.Errorf("expected trimmed answer, got %q", got)
	}
	if model.lastPrompt != "What is the capital of Italy?" {
		t.Errorf("question not passed through verbatim: %q", model.lastPrompt)
	}
}

func TestAnswerTool_EmptyQuestion(t *testing.T) {
	model := &stubModel{response: "x"}
	ans := NewAnswerTool(model)

	if _, err := ans.Execute(context.Background(), `{"question":""}`); err == nil {
		t.Fatal("expected error for empty question")
	}
	if model.calls != 0 {
		t.Errorf("model should not be called for empty question, got %d calls", model.calls)
	}
}

func TestAnswerTool_EmptyModelResponse(t *testing.T) {
	model := &stubModel{response: "   "}
	ans := NewAnswerTool(model)

	_, err := ans.Execute(context.Background(), `{"question":"why"}`)
	if err == nil {
		t.Fatal("expected error for empty model response")
	}
	var adapterErr *AdapterError
	if !errors.As(err, &adapterErr) || adapterErr.Kind != ErrModel {
		t.Errorf("expected model AdapterError, got %v", err)
	}
}
