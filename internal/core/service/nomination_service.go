package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const (
	defaultPageSize = 15
	maxPageSize     = 100
)

type nominationService struct {
	noms      ports.NominationRepository
	users     ports.UserRepository
	timelines ports.TimelineRepository
	notifier  ports.Notifier
	tx        ports.Tx
	log       zerolog.Logger
	now       func() time.Time
}

// NewNominationService returns the submission-side NominationService.
func NewNominationService(
	noms ports.NominationRepository,
	users ports.UserRepository,
	timelines ports.TimelineRepository,
	notifier ports.Notifier,
	tx ports.Tx,
	log zerolog.Logger,
) ports.NominationService {
	return &nominationService{
		noms:      noms,
		users:     users,
		timelines: timelines,
		notifier:  notifier,
		tx:        tx,
		log:       log,
		now:       time.Now,
	}
}

func (s *nominationService) Criteria(_ context.Context) map[string][]string {
	return domain.Criteria
}

func (s *nominationService) Candidates(ctx context.Context, requesterID string, filter ports.ListUsersFilter) (*ports.CandidatePage, error) {
	filter.ExcludeID = requesterID
	filter.ExcludeRoles = []string{domain.RoleAdmin}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return &ports.CandidatePage{Users: users, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *nominationService) FilterOptions(ctx context.Context) (*ports.FilterOptions, error) {
	return s.users.FilterOptions(ctx)
}

// Submit validates the selections against the taxonomy and creates the
// nomination. The one-active-nomination check and the insert run inside the
// same transaction.
func (s *nominationService) Submit(ctx context.Context, in ports.SubmitNominationInput) (*domain.Nomination, error) {
	if err := domain.ValidateSelections(in.Selections); err != nil {
		return nil, err
	}
	if in.Reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Message: "a nomination reason is required"}
	}
	if in.NominatorID == in.NomineeID {
		return nil, &domain.ValidationError{Field: "nominee", Message: "you cannot nominate yourself"}
	}

	if err := s.checkPhase(ctx, domain.PhaseNomination); err != nil {
		return nil, err
	}

	nominee, err := s.users.FindByID(ctx, in.NomineeID)
	if err != nil {
		return nil, err
	}

	var created *domain.Nomination
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		if _, err := s.noms.FindActiveByNominator(ctx, in.NominatorID); err == nil {
			return domain.ErrAlreadyNominated
		} else if err != domain.ErrNominationNotFound {
			return err
		}

		created, err = s.noms.Create(ctx, &domain.Nomination{
			NominatorID: in.NominatorID,
			NomineeID:   in.NomineeID,
			Status:      domain.StatusSubmitted,
			Selections:  in.Selections,
			Reason:      in.Reason,
			SubmittedAt: s.now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	nominator, err := s.users.FindByID(ctx, in.NominatorID)
	if err == nil {
		msg := fmt.Sprintf("Hi %s, thank you for nominating %s. Your submission has been received.",
			nominator.Username, nominee.Username)
		if nerr := s.notifier.Notify(ctx, nominator, "Nomination Confirmed", msg, domain.NotifNomination); nerr != nil {
			s.log.Warn().Err(nerr).Str("user_id", nominator.ID).Msg("confirmation notification failed")
		}
	}

	s.log.Info().
		Str("nomination_id", created.ID).
		Str("nominator_id", in.NominatorID).
		Str("nominee_id", in.NomineeID).
		Msg("nomination submitted")

	return created, nil
}

func (s *nominationService) Status(ctx context.Context, nominatorID string) (*ports.NominationStatus, error) {
	received, err := s.noms.CountReceived(ctx, nominatorID)
	if err != nil {
		return nil, err
	}

	nom, err := s.noms.FindActiveByNominator(ctx, nominatorID)
	if err == domain.ErrNominationNotFound {
		return &ports.NominationStatus{ReceivedCount: received}, nil
	}
	if err != nil {
		return nil, err
	}

	nominee := nom.Nominee
	if nominee == nil {
		if nominee, err = s.users.FindByID(ctx, nom.NomineeID); err != nil {
			return nil, err
		}
	}

	return &ports.NominationStatus{
		HasNominated:  true,
		Nominee:       nominee,
		Reason:        nom.Reason,
		SubmittedAt:   nom.SubmittedAt,
		ReceivedCount: received,
	}, nil
}

// Edit replaces the nominee, selections or reason of an unreviewed
// nomination.
func (s *nominationService) Edit(ctx context.Context, in ports.EditNominationInput) (*domain.Nomination, error) {
	nom, err := s.noms.FindActiveByNominator(ctx, in.NominatorID)
	if err != nil {
		return nil, err
	}
	if nom.Locked() {
		return nil, domain.ErrNominationLocked
	}

	if in.Selections != nil {
		if err := domain.ValidateSelections(in.Selections); err != nil {
			return nil, err
		}
		nom.Selections = in.Selections
	}
	if in.Reason != "" {
		nom.Reason = in.Reason
	}
	if in.NomineeID != "" && in.NomineeID != nom.NomineeID {
		if in.NomineeID == in.NominatorID {
			return nil, &domain.ValidationError{Field: "nominee", Message: "you cannot nominate yourself"}
		}
		if _, err := s.users.FindByID(ctx, in.NomineeID); err != nil {
			return nil, err
		}
		nom.NomineeID = in.NomineeID
	}

	if err := s.noms.Update(ctx, nom); err != nil {
		return nil, err
	}
	return nom, nil
}

func (s *nominationService) Withdraw(ctx context.Context, nominatorID string) error {
	nom, err := s.noms.FindActiveByNominator(ctx, nominatorID)
	if err != nil {
		return err
	}
	if nom.Locked() {
		return domain.ErrNominationLocked
	}
	return s.noms.Delete(ctx, nom.ID)
}

// checkPhase blocks the action when an active timeline exists and its window
// for the phase is closed. With no active timeline everything is allowed.
func (s *nominationService) checkPhase(ctx context.Context, phase domain.Phase) error {
	tl, err := s.timelines.FindActive(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("timeline lookup failed, allowing action")
		return nil
	}
	if tl == nil {
		return nil
	}
	if !tl.PhaseOpen(phase, s.now()) {
		return domain.ErrPhaseClosed
	}
	return nil
}
