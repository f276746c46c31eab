package ports

import (
	"context"
	"time"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// SubmitNominationInput carries a new nomination.
type SubmitNominationInput struct {
	NominatorID string
	NomineeID   string
	Selections  []domain.MetricSelection
	Reason      string
}

// EditNominationInput carries the fields a nominator may change before the
// nomination is reviewed. Nil slices / empty strings leave the field as is.
type EditNominationInput struct {
	NominatorID string
	NomineeID   string
	Selections  []domain.MetricSelection
	Reason      string
}

// NominationStatus is the nominator's own submission state.
type NominationStatus struct {
	HasNominated  bool
	Nominee       *domain.User
	Reason        string
	SubmittedAt   time.Time
	ReceivedCount int64
}

// CandidatePage is one page of the nominee directory.
type CandidatePage struct {
	Users []*domain.User
	Total int64
	Page  int
	Limit int
}

// NominationService implements submission-side operations.
type NominationService interface {
	// Criteria returns the category -> metrics taxonomy.
	Criteria(ctx context.Context) map[string][]string
	Candidates(ctx context.Context, requesterID string, filter ListUsersFilter) (*CandidatePage, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	Submit(ctx context.Context, in SubmitNominationInput) (*domain.Nomination, error)
	Status(ctx context.Context, nominatorID string) (*NominationStatus, error)
	Edit(ctx context.Context, in EditNominationInput) (*domain.Nomination, error)
	Withdraw(ctx context.Context, nominatorID string) error
}
