package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// VoteRepository defines persistence operations for finalist votes.
type VoteRepository interface {
	// Create inserts a vote; the unique voter index maps duplicate inserts
	// to domain.ErrAlreadyVoted.
	Create(ctx context.Context, v *domain.Vote) error
	HasVoted(ctx context.Context, voterID string) (bool, error)
	// CountByNomination returns vote totals keyed by nomination id.
	CountByNomination(ctx context.Context, nominationIDs []string) (map[string]int64, error)
}
