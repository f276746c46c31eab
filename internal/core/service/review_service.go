package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

type reviewService struct {
	noms     ports.NominationRepository
	users    ports.UserRepository
	notifier ports.Notifier
	tx       ports.Tx
	log      zerolog.Logger
}

// NewReviewService returns the ReviewService implementation that owns the
// nomination status state machine.
func NewReviewService(
	noms ports.NominationRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	tx ports.Tx,
	log zerolog.Logger,
) ports.ReviewService {
	return &reviewService{noms: noms, users: users, notifier: notifier, tx: tx, log: log}
}

// Queue returns the coordinator review list for the named view.
func (s *reviewService) Queue(ctx context.Context, filter ports.ReviewListFilter) ([]ports.ReviewRow, error) {
	var (
		noms []*domain.Nomination
		err  error
	)
	switch filter {
	case ports.ReviewFilterCommitteePending:
		noms, err = s.noms.ListByStatus(ctx, []domain.Status{domain.StatusCoordinatorApproved})
	case ports.ReviewFilterHistory:
		noms, err = s.noms.ListExcludingStatus(ctx, []domain.Status{domain.StatusSubmitted})
	default: // pending
		noms, err = s.noms.ListByStatus(ctx, []domain.Status{domain.StatusSubmitted})
	}
	if err != nil {
		return nil, fmt.Errorf("review queue: %w", err)
	}

	rows := make([]ports.ReviewRow, 0, len(noms))
	for _, n := range noms {
		row := ports.ReviewRow{
			ID:          n.ID,
			Reason:      n.Reason,
			SubmittedAt: n.SubmittedAt,
			Status:      n.Status,
			Category:    domain.DeriveCategory(n.Selections),
			Selections:  n.Selections,
		}
		if n.Nominee != nil {
			row.NomineeName = n.Nominee.DisplayName()
			row.NomineeRole = n.Nominee.Portfolio
			row.NomineeDept = n.Nominee.Practice
		}
		if n.Nominator != nil {
			row.NominatorName = n.Nominator.DisplayName()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Act applies one review action. The transition, the finalist-cap check and
// the bulk status update run inside a single transaction; notifications are
// dispatched after the commit.
func (s *reviewService) Act(ctx context.Context, in ports.ReviewActionInput) (*ports.ReviewResult, error) {
	if !domain.CanReview(in.ActorRole) {
		return nil, domain.ErrForbidden
	}

	nom, err := s.noms.FindByID(ctx, in.NominationID)
	if err != nil {
		return nil, err
	}

	next, err := domain.NextStatus(nom.Status, in.Action)
	if err != nil {
		return nil, err
	}

	var updated int64
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		// Re-read inside the transaction so a concurrent action on the same
		// nominee cannot slip between the check and the update.
		current, err := s.noms.FindByID(ctx, in.NominationID)
		if err != nil {
			return err
		}
		next, err = domain.NextStatus(current.Status, in.Action)
		if err != nil {
			return err
		}

		if next == domain.StatusCommitteeApproved && in.Action == domain.ActionApprove {
			finalists, err := s.noms.CountDistinctFinalists(ctx)
			if err != nil {
				return fmt.Errorf("count finalists: %w", err)
			}
			if finalists >= domain.FinalistLimit {
				return fmt.Errorf("%w (%d)", domain.ErrFinalistLimit, domain.FinalistLimit)
			}
		}

		updated, err = s.noms.UpdateStatusByNominee(ctx, nom.NomineeID, next)
		return err
	})
	if err != nil {
		return nil, err
	}

	// The status update is committed at this point; a nominee lookup failure
	// must not report the transition as failed.
	nominee := nom.Nominee
	if nominee == nil {
		if nominee, err = s.users.FindByID(ctx, nom.NomineeID); err != nil {
			s.log.Warn().Err(err).Str("nominee_id", nom.NomineeID).Msg("nominee lookup failed after status update")
			nominee = nil
		}
	}

	nomineeName := nom.NomineeID
	if nominee != nil {
		nomineeName = nominee.Username

		switch in.Action {
		case domain.ActionApprove:
			s.notifyApproved(ctx, nominee)
		case domain.ActionReject:
			s.notifyRejected(ctx, nominee)
		}
	}

	s.log.Info().
		Str("nomination_id", in.NominationID).
		Str("nominee_id", nom.NomineeID).
		Str("action", string(in.Action)).
		Str("new_status", string(next)).
		Int64("rows_updated", updated).
		Msg("review action applied")

	return &ports.ReviewResult{
		NomineeName: nomineeName,
		NewStatus:   next,
		Updated:     updated,
		Message:     actionMessage(in.Action, next, nomineeName),
	}, nil
}

func (s *reviewService) notifyApproved(ctx context.Context, nominee *domain.User) {
	msg := fmt.Sprintf(
		"Hi %s, great news! A nomination submitted for you has been reviewed and approved. Keep up the excellent work!",
		firstNameOr(nominee),
	)
	if err := s.notifier.Notify(ctx, nominee, "Congratulations! Your Nomination was Approved", msg, domain.NotifInfo); err != nil {
		s.log.Warn().Err(err).Str("user_id", nominee.ID).Msg("approval notification failed")
	}
}

// notifyRejected messages every nominator who put the nominee forward.
func (s *reviewService) notifyRejected(ctx context.Context, nominee *domain.User) {
	noms, err := s.noms.ListByNominee(ctx, nominee.ID)
	if err != nil {
		s.log.Warn().Err(err).Msg("rejection notification: list failed")
		return
	}
	for _, n := range noms {
		if n.Nominator == nil {
			continue
		}
		msg := fmt.Sprintf(
			"Hi %s, your nomination for %s has been reviewed and was not selected to move forward at this time. "+
				"You are encouraged to submit a new nomination with a more detailed reason, or you may nominate another deserving colleague.",
			firstNameOr(n.Nominator), nominee.Username,
		)
		if err := s.notifier.Notify(ctx, n.Nominator, "Nomination Update: Action Required", msg, domain.NotifInfo); err != nil {
			s.log.Warn().Err(err).Str("user_id", n.Nominator.ID).Msg("rejection notification failed")
		}
	}
}

func actionMessage(action domain.ReviewAction, next domain.Status, nominee string) string {
	switch {
	case action == domain.ActionUndo:
		return fmt.Sprintf("Undo successful. Reverted to %s", next)
	case next == domain.StatusCoordinatorApproved:
		return fmt.Sprintf("Shortlisted by Coordinator for %s", nominee)
	case next == domain.StatusCommitteeApproved:
		return fmt.Sprintf("Approved by Committee (Finalist) for %s", nominee)
	case next == domain.StatusAwarded:
		return fmt.Sprintf("Award Granted for %s", nominee)
	case next == domain.StatusCoordinatorRejected:
		return fmt.Sprintf("Rejected (Coordinator Phase) for %s", nominee)
	case next == domain.StatusCommitteeRejected:
		return fmt.Sprintf("Rejected (Committee Phase) for %s", nominee)
	}
	return string(next)
}

func firstNameOr(u *domain.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
