package processing

import (
	"context"
	"fmt"
)

// passthroughOrchestrator completes every entity as-is without fetching
// or expanding it. It stands in for a real processing engine in dev mode
// and keeps dry runs functional when no pipeline is wired up: a dry run
// then reports exactly the synthetic Location entity and nothing else.
type passthroughOrchestrator struct{}

// NewPassthrough returns an Orchestrator that validates the entity's
// structural fields and completes it unchanged, discovering nothing.
func NewPassthrough() Orchestrator {
	return &passthroughOrchestrator{}
}

var _ Orchestrator = (*passthroughOrchestrator)(nil)

func (*passthroughOrchestrator) Process(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Entity == nil {
		return nil, fmt.Errorf("processing request has no entity")
	}
	if err := req.Entity.Validate(); err != nil {
		return &Result{Ok: false, Errors: []error{err}}, nil
	}
	return &Result{Ok: true, Completed: req.Entity}, nil
}
