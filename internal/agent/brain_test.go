package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/meera/sahay/internal/governance"
	"github.com/meera/sahay/internal/plan"
	"github.com/meera/sahay/internal/tools"
)

// recordingStore captures the single interaction a pipeline run appends.
type recordingStore struct {
	chatID    string
	utterance string
	plan      *plan.Plan
	outcomes  []plan.StepOutcome
	response  string
	calls     int
}

func (r *recordingStore) LogInteraction(chatID, utterance string, p *plan.Plan, outcomes []plan.StepOutcome, response string) error {
	r.calls++
	r.chatID = chatID
	r.utterance = utterance
	r.plan = p
	r.outcomes = outcomes
	r.response = response
	return nil
}

func TestPlannerBrain_EndToEnd(t *testing.T) {
	model := &stubModel{resp: planResponse(`{"steps":[
		{"index":0,"capability":"calculate","arguments":{"op":"add","a":10,"b":20}},
		{"index":1,"capability":"translate","arguments":{"text":"Have a nice day","target_language":"German"}}
	]}`)}

	reg := tools.NewRegistry()
	reg.Register(tools.NewCalculatorTool())
	reg.Register(&countingTool{name: "translate", result: "Einen schönen Tag"})

	store := &recordingStore{}
	brain := NewPlannerBrain(
		NewDecomposer(model, NewPromptManager(""), quietLogger()),
		NewOrchestrator(reg, governance.NewDefaultPolicyEngine(), quietLogger()),
		store,
		quietLogger(),
	)

	response, err := brain.Think(context.Background(), "console", "Add 10 and 20, then translate 'Have a nice day' into German.")
	if err != nil {
		t.Fatalf("Think failed: %v", err)
	}

	first := strings.Index(response, "30")
	second := strings.Index(response, "Einen schönen Tag")
	if first < 0 || second < 0 || first > second {
		t.Errorf("results missing or out of order: %q", response)
	}

	if store.calls != 1 {
		t.Fatalf("expected 1 interaction logged, got %d", store.calls)
	}
	if store.response != response || len(store.outcomes) != 2 {
		t.Errorf("interaction log incomplete: %+v", store)
	}
}

func TestPlannerBrain_PartialFailureStillComposes(t *testing.T) {
	model := &stubModel{resp: planResponse(`{"steps":[
		{"index":0,"capability":"calculate","arguments":{"op":"multiply","a":5,"b":0}},
		{"index":1,"capability":"calculate","arguments":{"op":"divide","a":10,"b":0}}
	]}`)}

	reg := tools.NewRegistry()
	reg.Register(tools.NewCalculatorTool())

	brain := NewPlannerBrain(
		NewDecomposer(model, NewPromptManager(""), quietLogger()),
		NewOrchestrator(reg, governance.NewDefaultPolicyEngine(), quietLogger()),
		nil,
		quietLogger(),
	)

	response, err := brain.Think(context.Background(), "console", "Multiply 5 and 0 then divide 10 by 0.")
	if err != nil {
		t.Fatalf("Think failed: %v", err)
	}
	if !strings.Contains(response, "Step 1 (calculate): 0") {
		t.Errorf("successful step missing: %q", response)
	}
	if !strings.Contains(response, "ERROR") || !strings.Contains(response, "division by zero") {
		t.Errorf("failed step not rendered inline: %q", response)
	}
}

func TestPlannerBrain_DecompositionFailureAbortsRequest(t *testing.T) {
	model := &stubModel{err: errors.New("network error")}

	brain := NewPlannerBrain(
		NewDecomposer(model, NewPromptManager(""), quietLogger()),
		NewOrchestrator(tools.NewRegistry(), governance.NewDefaultPolicyEngine(), quietLogger()),
		nil,
		quietLogger(),
	)

	_, err := brain.Think(context.Background(), "console", "Add 10 and 20")
	if err == nil {
		t.Fatal("expected decomposition error to surface")
	}
	var decompErr *plan.DecompositionError
	if !errors.As(err, &decompErr) {
		t.Errorf("expected DecompositionError, got %v", err)
	}
}
