package agent

import (
	"context"
	"log"

	"github.com/meera/sahay/internal/observability"
	"github.com/meera/sahay/internal/plan"
)

// Brain is the conversational entry point a gateway talks to.
type Brain interface {
	Think(ctx context.Context, chatID string, input string) (string, error)
}

// InteractionStore is the write-only log sink for completed requests.
type InteractionStore interface {
	LogInteraction(chatID, utterance string, p *plan.Plan, outcomes []plan.StepOutcome, response string) error
}

// PlannerBrain runs the full pipeline for one utterance: decompose into a
// plan, execute it step by step, compose the final answer, and append the
// whole exchange to the interaction log. A decomposition failure aborts the
// request and is returned as the error; everything downstream folds into
// per-step outcomes instead.
type PlannerBrain struct {
	Decomposer   *Decomposer
	Orchestrator *Orchestrator
	Store        InteractionStore
	Logger       *observability.Logger
}

func NewPlannerBrain(decomposer *Decomposer, orchestrator *Orchestrator, store InteractionStore, logger *observability.Logger) *PlannerBrain {
	return &PlannerBrain{
		Decomposer:   decomposer,
		Orchestrator: orchestrator,
		Store:        store,
		Logger:       logger,
	}
}

func (b *PlannerBrain) Think(ctx context.Context, chatID string, input string) (string, error) {
	observability.SetStatus(observability.RolePlanning, truncate(input, 40))
	defer observability.SetStatus(observability.RoleIdle, "")
	observability.Heartbeat()

	p, err := b.Decomposer.Decompose(ctx, chatID, input)
	if err != nil {
		b.Logger.LogDecomposeFailure(chatID, input, err)
		return "", err
	}

	outcomes := b.Orchestrator.Run(ctx, chatID, p)
	response := plan.Compose(p, outcomes)

	if b.Store != nil {
		if err := b.Store.LogInteraction(chatID, input, p, outcomes, response); err != nil {
			log.Printf("failed to log interaction: %v", err)
		}
	}

	return response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
