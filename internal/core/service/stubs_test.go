package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// In-memory fakes shared by the service tests.

type stubNominationRepo struct {
	noms   []*domain.Nomination
	nextID int
}

func (r *stubNominationRepo) Create(_ context.Context, n *domain.Nomination) (*domain.Nomination, error) {
	r.nextID++
	n.ID = fmt.Sprintf("nom_%d", r.nextID)
	r.noms = append(r.noms, n)
	return n, nil
}

func (r *stubNominationRepo) FindByID(_ context.Context, id string) (*domain.Nomination, error) {
	for _, n := range r.noms {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domain.ErrNominationNotFound
}

func (r *stubNominationRepo) FindActiveByNominator(_ context.Context, nominatorID string) (*domain.Nomination, error) {
	for _, n := range r.noms {
		if n.NominatorID == nominatorID && n.Active() {
			return n, nil
		}
	}
	return nil, domain.ErrNominationNotFound
}

func (r *stubNominationRepo) Update(_ context.Context, n *domain.Nomination) error {
	for i, existing := range r.noms {
		if existing.ID == n.ID {
			r.noms[i] = n
			return nil
		}
	}
	return domain.ErrNominationNotFound
}

func (r *stubNominationRepo) Delete(_ context.Context, id string) error {
	for i, n := range r.noms {
		if n.ID == id {
			r.noms = append(r.noms[:i], r.noms[i+1:]...)
			return nil
		}
	}
	return domain.ErrNominationNotFound
}

func statusIn(s domain.Status, set []domain.Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func (r *stubNominationRepo) ListByStatus(_ context.Context, statuses []domain.Status) ([]*domain.Nomination, error) {
	var out []*domain.Nomination
	for _, n := range r.noms {
		if statusIn(n.Status, statuses) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNominationRepo) ListExcludingStatus(_ context.Context, statuses []domain.Status) ([]*domain.Nomination, error) {
	var out []*domain.Nomination
	for _, n := range r.noms {
		if !statusIn(n.Status, statuses) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNominationRepo) ListAll(_ context.Context) ([]*domain.Nomination, error) {
	return r.noms, nil
}

func (r *stubNominationRepo) ListByNominee(_ context.Context, nomineeID string) ([]*domain.Nomination, error) {
	var out []*domain.Nomination
	for _, n := range r.noms {
		if n.NomineeID == nomineeID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNominationRepo) UpdateStatusByNominee(_ context.Context, nomineeID string, status domain.Status) (int64, error) {
	var updated int64
	for _, n := range r.noms {
		if n.NomineeID == nomineeID {
			n.Status = status
			updated++
		}
	}
	return updated, nil
}

func (r *stubNominationRepo) CountDistinctFinalists(_ context.Context) (int64, error) {
	seen := make(map[string]struct{})
	for _, n := range r.noms {
		if n.Status == domain.StatusCommitteeApproved {
			seen[n.NomineeID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (r *stubNominationRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.noms)), nil
}

func (r *stubNominationRepo) CountByStatus(_ context.Context, statuses []domain.Status) (int64, error) {
	var count int64
	for _, n := range r.noms {
		if statusIn(n.Status, statuses) {
			count++
		}
	}
	return count, nil
}

func (r *stubNominationRepo) CountReceived(_ context.Context, nomineeID string) (int64, error) {
	var count int64
	for _, n := range r.noms {
		if n.NomineeID == nomineeID {
			count++
		}
	}
	return count, nil
}

func (r *stubNominationRepo) CountDistinctNominators(_ context.Context) (int64, error) {
	seen := make(map[string]struct{})
	for _, n := range r.noms {
		seen[n.NominatorID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r *stubNominationRepo) CountDistinctNomineesByStatus(_ context.Context, statuses []domain.Status) (int64, error) {
	seen := make(map[string]struct{})
	for _, n := range r.noms {
		if statusIn(n.Status, statuses) {
			seen[n.NomineeID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (r *stubNominationRepo) DepartmentCounts(_ context.Context) ([]ports.DepartmentCount, error) {
	return nil, nil
}

func (r *stubNominationRepo) DailyTrend(_ context.Context) ([]ports.TrendPoint, error) {
	return nil, nil
}

func (r *stubNominationRepo) MonthlyTrend(_ context.Context) ([]ports.TrendPoint, error) {
	return nil, nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	if u.ID == "" {
		u.ID = "user_" + u.Username
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) UpsertByEmail(_ context.Context, u *domain.User) (bool, error) {
	for id, existing := range r.users {
		if existing.Email == u.Email {
			u.ID = id
			r.users[id] = u
			return false, nil
		}
	}
	u.ID = "user_" + u.Username
	r.users[u.ID] = u
	return true, nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.ID == filter.ExcludeID {
			continue
		}
		excluded := false
		for _, role := range filter.ExcludeRoles {
			if u.Role == role {
				excluded = true
			}
		}
		if excluded {
			continue
		}
		if filter.Search != "" && !strings.Contains(u.Username, filter.Search) {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) FilterOptions(_ context.Context) (*ports.FilterOptions, error) {
	return &ports.FilterOptions{}, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type stubVoteRepo struct {
	votes []*domain.Vote
}

func (r *stubVoteRepo) Create(_ context.Context, v *domain.Vote) error {
	for _, existing := range r.votes {
		if existing.VoterID == v.VoterID {
			return domain.ErrAlreadyVoted
		}
	}
	r.votes = append(r.votes, v)
	return nil
}

func (r *stubVoteRepo) HasVoted(_ context.Context, voterID string) (bool, error) {
	for _, v := range r.votes {
		if v.VoterID == voterID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVoteRepo) CountByNomination(_ context.Context, nominationIDs []string) (map[string]int64, error) {
	wanted := make(map[string]struct{}, len(nominationIDs))
	for _, id := range nominationIDs {
		wanted[id] = struct{}{}
	}
	counts := make(map[string]int64)
	for _, v := range r.votes {
		if _, ok := wanted[v.NominationID]; ok {
			counts[v.NominationID]++
		}
	}
	return counts, nil
}

type stubTimelineRepo struct {
	timelines []*domain.Timeline
	nextID    int
}

func (r *stubTimelineRepo) Create(_ context.Context, t *domain.Timeline) (*domain.Timeline, error) {
	if t.IsActive {
		for _, existing := range r.timelines {
			existing.IsActive = false
		}
	}
	r.nextID++
	t.ID = fmt.Sprintf("tl_%d", r.nextID)
	r.timelines = append(r.timelines, t)
	return t, nil
}

func (r *stubTimelineRepo) Update(_ context.Context, t *domain.Timeline) error {
	for i, existing := range r.timelines {
		if existing.ID == t.ID {
			if t.IsActive {
				for _, other := range r.timelines {
					other.IsActive = false
				}
			}
			r.timelines[i] = t
			return nil
		}
	}
	return domain.ErrTimelineNotFound
}

func (r *stubTimelineRepo) List(_ context.Context) ([]*domain.Timeline, error) {
	return r.timelines, nil
}

func (r *stubTimelineRepo) FindActive(_ context.Context) (*domain.Timeline, error) {
	for _, t := range r.timelines {
		if t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

type notifyCall struct {
	userID string
	title  string
}

type stubNotifier struct {
	calls []notifyCall
	err   error
}

func (n *stubNotifier) Notify(_ context.Context, user *domain.User, title, _, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.calls = append(n.calls, notifyCall{userID: user.ID, title: title})
	return nil
}

type stubTx struct{}

func (stubTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubTokenStore struct {
	tokens map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, token, userID string) error {
	s.tokens[token] = userID
	return nil
}

func (s *stubTokenStore) Lookup(_ context.Context, token string) (string, error) {
	return s.tokens[token], nil
}

func (s *stubTokenStore) Revoke(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type stubRosterParser struct {
	entries []ports.RosterEntry
	err     error
}

func (p *stubRosterParser) Parse(_ io.Reader) ([]ports.RosterEntry, error) {
	return p.entries, p.err
}

type stubAnalyzer struct {
	analyzeFn func(ctx context.Context, inputs []ports.SentimentInput) ([]ports.SentimentResult, error)
}

func (a *stubAnalyzer) Analyze(ctx context.Context, inputs []ports.SentimentInput) ([]ports.SentimentResult, error) {
	return a.analyzeFn(ctx, inputs)
}
