package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

type votingService struct {
	noms  ports.NominationRepository
	votes ports.VoteRepository
	log   zerolog.Logger
	now   func() time.Time
}

// NewVotingService returns the VotingService implementation.
func NewVotingService(noms ports.NominationRepository, votes ports.VoteRepository, log zerolog.Logger) ports.VotingService {
	return &votingService{noms: noms, votes: votes, log: log, now: time.Now}
}

// Ballot lists one finalist per nominee plus the voter's own vote state.
func (s *votingService) Ballot(ctx context.Context, voterID string) (*ports.Ballot, error) {
	hasVoted, err := s.votes.HasVoted(ctx, voterID)
	if err != nil {
		return nil, fmt.Errorf("voting ballot: %w", err)
	}

	noms, err := s.noms.ListByStatus(ctx, []domain.Status{domain.StatusCommitteeApproved})
	if err != nil {
		return nil, fmt.Errorf("voting ballot: %w", err)
	}

	finalists := make([]ports.Finalist, 0, len(noms))
	for _, n := range domain.DedupeByNominee(noms) {
		f := ports.Finalist{NominationID: n.ID, Reason: n.Reason}
		if n.Nominee != nil {
			f.NomineeName = n.Nominee.DisplayName()
			f.NomineeDept = n.Nominee.Practice
			f.NomineeRole = n.Nominee.Portfolio
		}
		if n.Nominator != nil {
			f.NominatorName = n.Nominator.Username
		}
		finalists = append(finalists, f)
	}

	return &ports.Ballot{HasVoted: hasVoted, Finalists: finalists}, nil
}

func (s *votingService) CastVote(ctx context.Context, voterID, voterRole, nominationID string) error {
	if voterRole == domain.RoleAdmin {
		return domain.ErrForbidden
	}

	hasVoted, err := s.votes.HasVoted(ctx, voterID)
	if err != nil {
		return err
	}
	if hasVoted {
		return domain.ErrAlreadyVoted
	}

	nom, err := s.noms.FindByID(ctx, nominationID)
	if err != nil {
		return err
	}
	if nom.Status != domain.StatusCommitteeApproved {
		return domain.ErrNominationNotFound
	}

	if err := s.votes.Create(ctx, &domain.Vote{
		VoterID:      voterID,
		NominationID: nominationID,
		VotedAt:      s.now().UTC(),
	}); err != nil {
		return err
	}

	s.log.Info().Str("voter_id", voterID).Str("nomination_id", nominationID).Msg("vote cast")
	return nil
}
