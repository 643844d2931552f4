package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meera/sahay/internal/governance"
	"github.com/meera/sahay/internal/observability"
	"github.com/meera/sahay/internal/plan"
	"github.com/meera/sahay/internal/tools"
)

// Orchestrator walks a validated plan in index order, resolving each step
// against the outcomes so far and dispatching it to its capability adapter.
// One step's failure never aborts the siblings: every declared step produces
// exactly one outcome.
type Orchestrator struct {
	Registry *tools.Registry
	Policy   governance.PolicyEngine
	Logger   *observability.Logger
}

func NewOrchestrator(registry *tools.Registry, policy governance.PolicyEngine, logger *observability.Logger) *Orchestrator {
	return &Orchestrator{
		Registry: registry,
		Policy:   policy,
		Logger:   logger,
	}
}

func (o *Orchestrator) Run(ctx context.Context, chatID string, p *plan.Plan) []plan.StepOutcome {
	outcomes := make([]plan.StepOutcome, 0, len(p.Steps))
	for _, step := range p.Steps {
		observability.SetStatus(observability.RoleExecuting, fmt.Sprintf("step %d (%s)", step.Index+1, step.Capability))
		outcome := o.runStep(ctx, chatID, step, outcomes)
		o.Logger.LogStep(chatID, step.Index, string(step.Capability), string(outcome.Status), outcome.Value, outcome.Err)
		outcomes = append(outcomes, outcome)
	}
	observability.SetStatus(observability.RoleIdle, "")
	return outcomes
}

func (o *Orchestrator) runStep(ctx context.Context, chatID string, step plan.SubTask, outcomes []plan.StepOutcome) plan.StepOutcome {
	resolved, err := plan.Resolve(step, outcomes)
	if err != nil {
		return plan.Failed(step.Index, err)
	}

	args, err := json.Marshal(resolved.Arguments)
	if err != nil {
		return plan.Failed(step.Index, fmt.Errorf("encode arguments: %v", err))
	}

	if o.Policy != nil {
		res, err := o.Policy.Evaluate(ctx, governance.Request{
			Capability: string(step.Capability),
			Arguments:  string(args),
			ChatID:     chatID,
		})
		if err != nil {
			return plan.Failed(step.Index, fmt.Errorf("policy evaluation: %v", err))
		}
		o.Logger.LogPolicyCheck(chatID, string(step.Capability), string(res.Effect), res.Reason)
		if res.Effect == governance.EffectDeny {
			return plan.Failed(step.Index, &tools.AdapterError{
				Capability: string(step.Capability),
				Kind:       tools.ErrPolicy,
				Err:        errors.New(res.Reason),
			})
		}
	}

	tool := o.Registry.Get(string(step.Capability))
	if tool == nil {
		return plan.Failed(step.Index, fmt.Errorf("no adapter registered for capability %q", step.Capability))
	}

	value, err := tool.Execute(ctx, string(args))
	if err != nil {
		return plan.Failed(step.Index, err)
	}
	return plan.OK(step.Index, value)
}
