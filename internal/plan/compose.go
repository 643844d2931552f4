package plan

import (
	"fmt"
	"strings"
)

// Compose merges the ordered outcome list into one human-readable answer, one
// line per step in index order. Failed steps are rendered inline and never cut
// composition of the steps after them. Identical inputs always produce
// identical output.
func Compose(p *Plan, outcomes []StepOutcome) string {
	if len(p.Steps) == 0 {
		return "No steps to execute."
	}

	byIndex := make(map[int]StepOutcome, len(outcomes))
	for _, o := range outcomes {
		byIndex[o.Index] = o
	}

	lines := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		o, ok := byIndex[step.Index]
		if !ok {
			lines = append(lines, fmt.Sprintf("Step %d (%s): ERROR: no outcome recorded", step.Index+1, step.Capability))
			continue
		}
		if o.Status == StatusOK {
			lines = append(lines, fmt.Sprintf("Step %d (%s): %s", step.Index+1, step.Capability, o.Value))
		} else {
			lines = append(lines, fmt.Sprintf("Step %d (%s): ERROR: %v", step.Index+1, step.Capability, o.Err))
		}
	}
	return strings.Join(lines, "\n")
}
