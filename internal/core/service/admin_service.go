package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

type adminService struct {
	noms      ports.NominationRepository
	users     ports.UserRepository
	votes     ports.VoteRepository
	timelines ports.TimelineRepository
	roster    ports.RosterParser
	log       zerolog.Logger
}

// NewAdminService returns the AdminService implementation.
func NewAdminService(
	noms ports.NominationRepository,
	users ports.UserRepository,
	votes ports.VoteRepository,
	timelines ports.TimelineRepository,
	roster ports.RosterParser,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{noms: noms, users: users, votes: votes, timelines: timelines, roster: roster, log: log}
}

// Results lists finalists and winners with vote totals, one row per nominee,
// ordered by votes descending. Vote counts are aggregated over every
// nomination row before the per-nominee reduction.
func (s *adminService) Results(ctx context.Context) ([]ports.VoteResult, error) {
	noms, err := s.noms.ListByStatus(ctx, []domain.Status{domain.StatusCommitteeApproved, domain.StatusAwarded})
	if err != nil {
		return nil, fmt.Errorf("admin results: %w", err)
	}

	ids := make([]string, 0, len(noms))
	for _, n := range noms {
		ids = append(ids, n.ID)
	}
	counts, err := s.votes.CountByNomination(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("admin results: %w", err)
	}

	sort.SliceStable(noms, func(i, j int) bool {
		return counts[noms[i].ID] > counts[noms[j].ID]
	})

	results := make([]ports.VoteResult, 0, len(noms))
	for _, n := range domain.DedupeByNominee(noms) {
		r := ports.VoteResult{
			NominationID: n.ID,
			Reason:       n.Reason,
			Status:       n.Status,
			VoteCount:    counts[n.ID],
		}
		if n.Nominee != nil {
			r.NomineeName = n.Nominee.DisplayName()
			r.EmployeeID = n.Nominee.EmployeeID
			r.Portfolio = orDefault(n.Nominee.Portfolio, "No Title")
			r.Practice = orDefault(n.Nominee.Practice, "General")
		}
		results = append(results, r)
	}
	return results, nil
}

// DeclareWinner promotes a finalist's nominations to AWARDED through the
// standard transition table.
func (s *adminService) DeclareWinner(ctx context.Context, nominationID string) (*ports.ReviewResult, error) {
	nom, err := s.noms.FindByID(ctx, nominationID)
	if err != nil {
		return nil, err
	}
	next, err := domain.NextStatus(nom.Status, domain.ActionApprove)
	if err != nil {
		return nil, err
	}
	if next != domain.StatusAwarded {
		return nil, fmt.Errorf("%w: nomination is not a finalist", domain.ErrInvalidTransition)
	}

	updated, err := s.noms.UpdateStatusByNominee(ctx, nom.NomineeID, next)
	if err != nil {
		return nil, err
	}

	name := nom.NomineeID
	if nom.Nominee != nil {
		name = nom.Nominee.Username
	}
	s.log.Info().Str("nomination_id", nominationID).Str("nominee", name).Msg("winner declared")

	return &ports.ReviewResult{NomineeName: name, NewStatus: next, Updated: updated, Message: "Winner declared!"}, nil
}

// Winners groups nominees by the furthest review stage they reached.
func (s *adminService) Winners(ctx context.Context) (*ports.WinnersBoard, error) {
	coordinator, err := s.noms.ListByStatus(ctx, []domain.Status{
		domain.StatusCoordinatorApproved, domain.StatusCommitteeApproved, domain.StatusAwarded,
	})
	if err != nil {
		return nil, err
	}
	committee, err := s.noms.ListByStatus(ctx, []domain.Status{
		domain.StatusCommitteeApproved, domain.StatusAwarded,
	})
	if err != nil {
		return nil, err
	}
	final, err := s.noms.ListByStatus(ctx, []domain.Status{domain.StatusAwarded})
	if err != nil {
		return nil, err
	}

	return &ports.WinnersBoard{
		FinalWinners:       winnerEntries(domain.DedupeByNominee(final)),
		CommitteeWinners:   winnerEntries(domain.DedupeByNominee(committee)),
		CoordinatorWinners: winnerEntries(domain.DedupeByNominee(coordinator)),
	}, nil
}

func winnerEntries(noms []*domain.Nomination) []ports.WinnerEntry {
	entries := make([]ports.WinnerEntry, 0, len(noms))
	for _, n := range noms {
		e := ports.WinnerEntry{}
		if n.Nominee != nil {
			e.Name = n.Nominee.DisplayName()
			e.EmployeeID = n.Nominee.EmployeeID
			e.Portfolio = n.Nominee.Portfolio
			e.Practice = n.Nominee.Practice
		}
		entries = append(entries, e)
	}
	return entries
}

func (s *adminService) Analytics(ctx context.Context) (*ports.AnalyticsReport, error) {
	summary, err := s.summary(ctx)
	if err != nil {
		return nil, err
	}

	deptStats, err := s.noms.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := s.noms.DailyTrend(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.noms.MonthlyTrend(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.AnalyticsReport{
		Summary:         *summary,
		DepartmentStats: deptStats,
		DailyTrend:      daily,
		MonthlyTrend:    monthly,
	}, nil
}

func (s *adminService) summary(ctx context.Context) (*ports.AnalyticsSummary, error) {
	total, err := s.noms.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	// Passed the coordinator stage at any point, later rejections included.
	coordApproved, err := s.noms.CountByStatus(ctx, []domain.Status{
		domain.StatusCoordinatorApproved, domain.StatusCommitteeApproved,
		domain.StatusAwarded, domain.StatusCommitteeRejected,
	})
	if err != nil {
		return nil, err
	}
	finalists, err := s.noms.CountByStatus(ctx, []domain.Status{
		domain.StatusCommitteeApproved, domain.StatusAwarded,
	})
	if err != nil {
		return nil, err
	}
	rejections, err := s.noms.CountByStatus(ctx, []domain.Status{
		domain.StatusCoordinatorRejected, domain.StatusCommitteeRejected,
	})
	if err != nil {
		return nil, err
	}
	winners, err := s.noms.CountDistinctNomineesByStatus(ctx, []domain.Status{domain.StatusAwarded})
	if err != nil {
		return nil, err
	}
	employees, err := s.users.CountByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	nominators, err := s.noms.CountDistinctNominators(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.AnalyticsSummary{
		TotalNominations:      total,
		CoordinatorApproved:   coordApproved,
		CommitteeFinalists:    finalists,
		FinalWinners:          winners,
		TotalRejections:       rejections,
		EmployeesNotNominated: employees - nominators,
	}, nil
}

// StarAwardRows builds the denormalised export rows over every nomination.
func (s *adminService) StarAwardRows(ctx context.Context) ([]ports.StarAwardRow, error) {
	noms, err := s.noms.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.StarAwardRow, 0, len(noms))
	for _, n := range noms {
		row := ports.StarAwardRow{
			CompletionTime: n.SubmittedAt,
			Categories:     distinctCategories(n.Selections),
			Reason:         n.Reason,
			Approved:       n.Status.Approved(),
		}
		if n.Nominator != nil {
			row.NominatorEmail = n.Nominator.Email
			row.NominatorName = n.Nominator.Username
		}
		if n.Nominee != nil {
			row.NomineeEmail = n.Nominee.Email
			row.Contract = n.Nominee.ContractType
			row.Location = n.Nominee.Location
			row.Country = n.Nominee.Country
			row.Practice = n.Nominee.Practice
			row.Portfolio = n.Nominee.Portfolio
			row.LineManager = n.Nominee.LineManager
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func distinctCategories(selections []domain.MetricSelection) string {
	seen := make(map[string]struct{}, len(selections))
	var cats []string
	for _, sel := range selections {
		if sel.Category == "" {
			continue
		}
		if _, ok := seen[sel.Category]; ok {
			continue
		}
		seen[sel.Category] = struct{}{}
		cats = append(cats, sel.Category)
	}
	return strings.Join(cats, ", ")
}

// ReportData gathers the summary, department breakdown and the chronological
// approval log for the three-sheet report.
func (s *adminService) ReportData(ctx context.Context) (*ports.ReportData, error) {
	summary, err := s.summary(ctx)
	if err != nil {
		return nil, err
	}
	deptCounts, err := s.noms.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	noms, err := s.noms.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var logs []ports.ApprovalLogRow
	for _, n := range noms {
		employee, dept := "", ""
		if n.Nominee != nil {
			employee = n.Nominee.Username
			dept = n.Nominee.Practice
		}
		actionBy := "System"
		if n.Nominator != nil {
			actionBy = n.Nominator.Username
		}

		logs = append(logs, ports.ApprovalLogRow{
			Employee: employee, Department: dept,
			Stage: "Initial Nomination", ActionBy: actionBy, Date: n.SubmittedAt,
		})
		if n.Status.PassedCoordinator() {
			logs = append(logs, ports.ApprovalLogRow{
				Employee: employee, Department: dept,
				Stage: "Coordinator Approval", ActionBy: "Coordinator", Date: n.SubmittedAt,
			})
		}
		if n.Status == domain.StatusCommitteeApproved || n.Status == domain.StatusAwarded {
			logs = append(logs, ports.ApprovalLogRow{
				Employee: employee, Department: dept,
				Stage: "Committee Approval", ActionBy: "Committee", Date: n.SubmittedAt,
			})
		}
		if n.Status == domain.StatusAwarded {
			logs = append(logs, ports.ApprovalLogRow{
				Employee: employee, Department: dept,
				Stage: "Final Winner", ActionBy: "Coordinator/Admin", Date: n.SubmittedAt,
			})
		}
	}

	return &ports.ReportData{Summary: *summary, DepartmentCounts: deptCounts, ApprovalLogs: logs}, nil
}

// ImportRoster bulk-creates or updates users from an uploaded workbook.
func (s *adminService) ImportRoster(ctx context.Context, r io.Reader) (*ports.RosterImportResult, error) {
	entries, err := s.roster.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("roster import: %w", err)
	}

	result := &ports.RosterImportResult{}
	for _, entry := range entries {
		if entry.Email == "" {
			continue
		}
		created, err := s.UpsertUser(ctx, entry)
		if err != nil {
			s.log.Warn().Err(err).Str("email", entry.Email).Msg("roster row skipped")
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.log.Info().Int("created", result.Created).Int("updated", result.Updated).Msg("roster import complete")
	return result, nil
}

// UpsertUser creates or updates one user keyed by email. The username is the
// part of the email before the first dot; newly created accounts get the
// username as their initial password.
func (s *adminService) UpsertUser(ctx context.Context, entry ports.RosterEntry) (bool, error) {
	first, last := splitName(entry.FullName)
	username := usernameFromEmail(entry.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(username), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}

	u := &domain.User{
		Username:     username,
		FirstName:    first,
		LastName:     last,
		Email:        entry.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleEmployee,
		EmployeeID:   strings.TrimSpace(entry.EmployeeID),
		Practice:     entry.Practice,
		Portfolio:    entry.Portfolio,
		Location:     entry.Location,
		Country:      entry.Country,
		ContractType: entry.ContractType,
		LineManager:  entry.LineManager,
		UpdatedAt:    time.Now().UTC(),
	}
	return s.users.UpsertByEmail(ctx, u)
}

func usernameFromEmail(email string) string {
	prefix := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		prefix = email[:i]
	}
	if i := strings.IndexByte(prefix, '.'); i >= 0 {
		prefix = prefix[:i]
	}
	return prefix
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (s *adminService) CreateTimeline(ctx context.Context, t *domain.Timeline) (*domain.Timeline, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return s.timelines.Create(ctx, t)
}

func (s *adminService) UpdateTimeline(ctx context.Context, t *domain.Timeline) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.timelines.Update(ctx, t)
}

func (s *adminService) ListTimelines(ctx context.Context) ([]*domain.Timeline, error) {
	return s.timelines.List(ctx)
}
