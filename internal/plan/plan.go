package plan

import (
	"fmt"
	"regexp"
)

// Capability identifies one of the fixed operation kinds a sub-task can dispatch to.
type Capability string

const (
	CapabilityCalculate Capability = "calculate"
	CapabilityTranslate Capability = "translate"
	CapabilityAnswer    Capability = "answer"
)

func (c Capability) Valid() bool {
	switch c {
	case CapabilityCalculate, CapabilityTranslate, CapabilityAnswer:
		return true
	}
	return false
}

// placeholderRe matches a reference to an earlier step's result inside an
// argument value, e.g. "{{step:0}}".
var placeholderRe = regexp.MustCompile(`\{\{step:(\d+)\}\}`)

// Placeholder returns the reference token for step index n.
func Placeholder(n int) string {
	return fmt.Sprintf("{{step:%d}}", n)
}

// SubTask is one atomic unit of work within a plan, bound to exactly one
// capability. DependsOn, when set, names the earlier step whose result the
// arguments reference via a placeholder.
type SubTask struct {
	Index      int               `json:"index"`
	Capability Capability        `json:"capability"`
	Arguments  map[string]string `json:"arguments"`
	DependsOn  *int              `json:"depends_on,omitempty"`
}

// Plan is the ordered, dependency-annotated sequence of sub-tasks derived from
// one user utterance. It is immutable after Validate passes.
type Plan struct {
	Steps []SubTask `json:"steps"`
}

type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// StepOutcome records the result of executing one sub-task. Exactly one of
// Value/Err is set, matching Status.
type StepOutcome struct {
	Index  int
	Status Status
	Value  string
	Err    error
}

func OK(index int, value string) StepOutcome {
	return StepOutcome{Index: index, Status: StatusOK, Value: value}
}

func Failed(index int, err error) StepOutcome {
	return StepOutcome{Index: index, Status: StatusFailed, Err: err}
}

// Validate checks the structural invariants of a decomposed plan: contiguous
// 0-based indexes, known capabilities, and backward-only dependencies whose
// placeholders agree with depends_on.
func Validate(p *Plan) error {
	for i, step := range p.Steps {
		if step.Index != i {
			return fmt.Errorf("step %d declares index %d, want %d", i, step.Index, i)
		}
		if !step.Capability.Valid() {
			return fmt.Errorf("step %d has unknown capability %q", i, step.Capability)
		}
		if step.DependsOn != nil {
			d := *step.DependsOn
			if d < 0 || d >= step.Index {
				return fmt.Errorf("step %d depends_on %d is not a prior step", i, d)
			}
		}
		for name, value := range step.Arguments {
			for _, m := range placeholderRe.FindAllStringSubmatch(value, -1) {
				if step.DependsOn == nil {
					return fmt.Errorf("step %d argument %q references %s without depends_on", i, name, m[0])
				}
				if m[1] != fmt.Sprint(*step.DependsOn) {
					return fmt.Errorf("step %d argument %q references %s but depends_on is %d", i, name, m[0], *step.DependsOn)
				}
			}
		}
	}
	return nil
}
