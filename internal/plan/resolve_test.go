package plan

import (
	"errors"
	"testing"
)

func TestResolve_NoDependencyPassesThrough(t *testing.T) {
	step := SubTask{
		Index:      0,
		Capability: CapabilityCalculate,
		Arguments:  map[string]string{"op": "add", "a": "10", "b": "20"},
	}

	resolved, err := Resolve(step, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Arguments["a"] != "10" || resolved.Arguments["b"] != "20" {
		t.Errorf("arguments changed without a dependency: %v", resolved.Arguments)
	}
}

func TestResolve_SubstitutesPriorResult(t *testing.T) {
	step := SubTask{
		Index:      1,
		Capability: CapabilityCalculate,
		Arguments:  map[string]string{"op": "add", "a": "{{step:0}}", "b": "10"},
		DependsOn:  intPtr(0),
	}
	outcomes := []StepOutcome{OK(0, "24")}

	resolved, err := Resolve(step, outcomes)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Arguments["a"] != "24" {
		t.Errorf("expected placeholder replaced with 24, got %q", resolved.Arguments["a"])
	}
	// The original step must stay untouched.
	if step.Arguments["a"] != "{{step:0}}" {
		t.Errorf("Resolve mutated its input: %q", step.Arguments["a"])
	}
}

func TestResolve_FailedDependency(t *testing.T) {
	step := SubTask{
		Index:      1,
		Capability: CapabilityTranslate,
		Arguments:  map[string]string{"text": "{{step:0}}"},
		DependsOn:  intPtr(0),
	}
	outcomes := []StepOutcome{Failed(0, errors.New("division by zero"))}

	_, err := Resolve(step, outcomes)
	if err == nil {
		t.Fatal("expected DependencyFailedError")
	}
	var depErr *DependencyFailedError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DependencyFailedError, got %T: %v", err, err)
	}
	if depErr.Index != 1 || depErr.DependsOn != 0 {
		t.Errorf("unexpected error fields: %+v", depErr)
	}
}

func TestResolve_MissingDependencyOutcome(t *testing.T) {
	step := SubTask{
		Index:      1,
		Capability: CapabilityAnswer,
		Arguments:  map[string]string{"question": "{{step:0}}"},
		DependsOn:  intPtr(0),
	}

	if _, err := Resolve(step, nil); err == nil {
		t.Fatal("expected error when the dependency has no outcome yet")
	}
}

func TestResolve_LeftoverPlaceholderIsAnError(t *testing.T) {
	// A placeholder pointing at a step other than depends_on survives
	// substitution; resolution must refuse to hand it to an adapter.
	step := SubTask{
		Index:      2,
		Capability: CapabilityAnswer,
		Arguments:  map[string]string{"question": "{{step:1}}"},
		DependsOn:  intPtr(0),
	}
	outcomes := []StepOutcome{OK(0, "Rome"), OK(1, "144")}

	if _, err := Resolve(step, outcomes); err == nil {
		t.Fatal("expected error for leftover placeholder")
	}
}
