package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// ReviewActionInput is one coordinator/admin decision on a nomination.
type ReviewActionInput struct {
	NominationID string
	Action       domain.ReviewAction
	ActorRole    string
}

// ReviewResult reports the outcome of a review action.
type ReviewResult struct {
	NomineeName string
	NewStatus   domain.Status
	Updated     int64 // nomination rows moved to NewStatus
	Message     string
}

// ReviewService owns the nomination status state machine.
type ReviewService interface {
	// Queue returns the coordinator review list for one of the named views.
	Queue(ctx context.Context, filter ReviewListFilter) ([]ReviewRow, error)
	// Act applies an APPROVE/REJECT/UNDO transition to every nomination of
	// the target's nominee, enforcing the transition table, the finalist cap
	// and the COORDINATOR/ADMIN role gate.
	Act(ctx context.Context, in ReviewActionInput) (*ReviewResult, error)
}
