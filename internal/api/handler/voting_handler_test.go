package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

type stubVotingService struct {
	ballotFn func(ctx context.Context, voterID string) (*ports.Ballot, error)
	castFn   func(ctx context.Context, voterID, voterRole, nominationID string) error
}

func (s *stubVotingService) Ballot(ctx context.Context, voterID string) (*ports.Ballot, error) {
	return s.ballotFn(ctx, voterID)
}

func (s *stubVotingService) CastVote(ctx context.Context, voterID, voterRole, nominationID string) error {
	return s.castFn(ctx, voterID, voterRole, nominationID)
}

func TestVotingHandler_Ballot(t *testing.T) {
	stub := &stubVotingService{
		ballotFn: func(_ context.Context, voterID string) (*ports.Ballot, error) {
			if voterID != "u_alice" {
				t.Fatalf("unexpected voter: %s", voterID)
			}
			return &ports.Ballot{
				HasVoted:  false,
				Finalists: []ports.Finalist{{NominationID: "n1", NomineeName: "Nora"}},
			}, nil
		},
	}
	h := NewVotingHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/voting/ballot", "")
	if err := h.Ballot(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var ballot ports.Ballot
	if err := json.Unmarshal(rec.Body.Bytes(), &ballot); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(ballot.Finalists) != 1 || ballot.Finalists[0].NomineeName != "Nora" {
		t.Fatalf("unexpected ballot: %+v", ballot)
	}
}

func TestVotingHandler_CastVote(t *testing.T) {
	stub := &stubVotingService{
		castFn: func(_ context.Context, voterID, voterRole, nominationID string) error {
			if voterID != "u_alice" || voterRole != domain.RoleEmployee || nominationID != "n1" {
				t.Fatalf("unexpected args: %s %s %s", voterID, voterRole, nominationID)
			}
			return nil
		},
	}
	h := NewVotingHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/voting/vote", `{"nomination_id":"n1"}`)
	if err := h.CastVote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVotingHandler_CastVote_MissingID(t *testing.T) {
	stub := &stubVotingService{
		castFn: func(context.Context, string, string, string) error {
			t.Fatalf("service must not be called")
			return nil
		},
	}
	h := NewVotingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/voting/vote", `{}`)
	err := h.CastVote(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestVotingHandler_CastVote_AlreadyVoted(t *testing.T) {
	stub := &stubVotingService{
		castFn: func(context.Context, string, string, string) error {
			return domain.ErrAlreadyVoted
		},
	}
	h := NewVotingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/voting/vote", `{"nomination_id":"n1"}`)
	if err := h.CastVote(c); err != domain.ErrAlreadyVoted {
		t.Fatalf("expected the domain error to propagate, got %v", err)
	}
}
