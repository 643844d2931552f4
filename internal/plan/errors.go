package plan

import "fmt"

// DecompositionError means the model's response could not be turned into a
// valid plan. It aborts the whole request: there is nothing to execute.
type DecompositionError struct {
	Reason string
	Err    error
}

func (e *DecompositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decomposition failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decomposition failed: %s", e.Reason)
}

func (e *DecompositionError) Unwrap() error {
	return e.Err
}

// DependencyFailedError marks a step whose prerequisite produced a failed
// outcome. The step it marks is never executed.
type DependencyFailedError struct {
	Index     int
	DependsOn int
}

func (e *DependencyFailedError) Error() string {
	return fmt.Sprintf("step %d not executed: it depends on failed step %d", e.Index, e.DependsOn)
}
