package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// TimelineRepository defines persistence operations for award-cycle
// timelines.
type TimelineRepository interface {
	// Create inserts a timeline; when t.IsActive it deactivates every other
	// timeline as part of the same call.
	Create(ctx context.Context, t *domain.Timeline) (*domain.Timeline, error)
	Update(ctx context.Context, t *domain.Timeline) error
	List(ctx context.Context) ([]*domain.Timeline, error)
	// FindActive returns the active timeline, or nil when none is active.
	FindActive(ctx context.Context) (*domain.Timeline, error)
}
