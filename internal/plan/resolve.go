package plan

import (
	"fmt"
	"strings"
)

// Resolve rewrites a sub-task's placeholder references with the literal value
// produced by its depends_on step. It is invoked incrementally as the
// orchestrator advances, so outcomes holds exactly the steps that already ran.
// The returned sub-task carries no placeholder tokens; substitution is purely
// textual, no re-interpretation happens here.
func Resolve(step SubTask, outcomes []StepOutcome) (SubTask, error) {
	resolved := step
	resolved.Arguments = make(map[string]string, len(step.Arguments))
	for name, value := range step.Arguments {
		resolved.Arguments[name] = value
	}

	if step.DependsOn != nil {
		dep := *step.DependsOn
		var prior *StepOutcome
		for i := range outcomes {
			if outcomes[i].Index == dep {
				prior = &outcomes[i]
				break
			}
		}
		if prior == nil {
			return SubTask{}, fmt.Errorf("step %d resolved before step %d produced an outcome", step.Index, dep)
		}
		if prior.Status == StatusFailed {
			return SubTask{}, &DependencyFailedError{Index: step.Index, DependsOn: dep}
		}
		token := Placeholder(dep)
		for name, value := range resolved.Arguments {
			resolved.Arguments[name] = strings.ReplaceAll(value, token, prior.Value)
		}
	}

	for name, value := range resolved.Arguments {
		if placeholderRe.MatchString(value) {
			return SubTask{}, fmt.Errorf("step %d argument %q still contains a placeholder after resolution: %s", step.Index, name, value)
		}
	}

	return resolved, nil
}
