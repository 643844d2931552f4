package gateway

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// scriptedBrain replies with canned responses, one per Think call.
type scriptedBrain struct {
	responses []string
	err       error
	inputs    []string
}

func (b *scriptedBrain) Think(ctx context.Context, chatID string, input string) (string, error) {
	b.inputs = append(b.inputs, input)
	if b.err != nil {
		return "", b.err
	}
	if len(b.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	resp := b.responses[0]
	b.responses = b.responses[1:]
	return resp, nil
}

func runConsole(t *testing.T, brain *scriptedBrain, input string) string {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cg := NewConsoleGateway(brain)
	cg.In = strings.NewReader(input)
	cg.Out = &out

	if err := cg.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return out.String()
}

func TestConsoleGateway_RoutesUtteranceAndExits(t *testing.T) {
	brain := &scriptedBrain{responses: []string{"Step 1 (calculate): 30"}}
	out := runConsole(t, brain, "Add 10 and 20\nexit\n")

	if len(brain.inputs) != 1 || brain.inputs[0] != "Add 10 and 20" {
		t.Errorf("utterance not routed to brain: %v", brain.inputs)
	}
	if !strings.Contains(out, "Step 1 (calculate): 30") {
		t.Errorf("response missing from output: %q", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("exit message missing: %q", out)
	}
}

func TestConsoleGateway_HelpAndBlankLinesSkipBrain(t *testing.T) {
	brain := &scriptedBrain{}
	out := runConsole(t, brain, "help\n\n   \nquit\n")

	if len(brain.inputs) != 0 {
		t.Errorf("help/blank lines must not reach the brain: %v", brain.inputs)
	}
	if !strings.Contains(out, "Example Inputs:") {
		t.Errorf("help output missing: %q", out)
	}
	if !strings.Contains(out, exampleInputs[0]) {
		t.Errorf("help examples missing: %q", out)
	}
}

func TestConsoleGateway_BrainErrorKeepsSessionAlive(t *testing.T) {
	brain := &scriptedBrain{err: errors.New("decomposition failed: model call failed")}
	out := runConsole(t, brain, "first\nsecond\nexit\n")

	if len(brain.inputs) != 2 {
		t.Errorf("session should survive errors, got inputs: %v", brain.inputs)
	}
	if strings.Count(out, "Error: decomposition failed") != 2 {
		t.Errorf("expected two error lines: %q", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("session did not end cleanly: %q", out)
	}
}
