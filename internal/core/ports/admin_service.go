package ports

import (
	"context"
	"io"
	"time"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// VoteResult is one row of the admin results board, ordered by vote count.
type VoteResult struct {
	NominationID string        `json:"id"`
	NomineeName  string        `json:"nominee_name"`
	EmployeeID   string        `json:"employee_id"`
	Portfolio    string        `json:"employee_role"`
	Practice     string        `json:"employee_dept"`
	Reason       string        `json:"reason"`
	Status       domain.Status `json:"status"`
	VoteCount    int64         `json:"vote_count"`
}

// WinnerEntry identifies a nominee who cleared a review stage.
type WinnerEntry struct {
	Name       string `json:"username"`
	EmployeeID string `json:"employee_id"`
	Portfolio  string `json:"employee_role"`
	Practice   string `json:"employee_dept"`
}

// WinnersBoard groups winners by the furthest stage reached.
type WinnersBoard struct {
	FinalWinners       []WinnerEntry `json:"final_winners"`
	CommitteeWinners   []WinnerEntry `json:"committee_winners"`
	CoordinatorWinners []WinnerEntry `json:"coordinator_winners"`
}

// AnalyticsSummary is the headline funnel of the award cycle.
type AnalyticsSummary struct {
	TotalNominations      int64 `json:"total_nominations"`
	CoordinatorApproved   int64 `json:"coordinator_approved"`
	CommitteeFinalists    int64 `json:"committee_finalists"`
	FinalWinners          int64 `json:"final_winner"`
	TotalRejections       int64 `json:"total_rejections"`
	EmployeesNotNominated int64 `json:"employees_not_nominated"`
}

// AnalyticsReport is the full admin analytics payload.
type AnalyticsReport struct {
	Summary          AnalyticsSummary  `json:"summary"`
	DepartmentStats  []DepartmentCount `json:"department_stats"`
	DailyTrend       []TrendPoint      `json:"daily_trend"`
	MonthlyTrend     []TrendPoint      `json:"trend_data"`
}

// StarAwardRow is one denormalised export line of the Star Award workbook.
type StarAwardRow struct {
	CompletionTime time.Time
	NominatorEmail string
	NominatorName  string
	NomineeEmail   string
	Categories     string // distinct categories, comma-joined
	Reason         string
	Contract       string
	Location       string
	Country        string
	Practice       string
	Portfolio      string
	LineManager    string
	Approved       bool
}

// ApprovalLogRow is one chronological entry of the report's approval log.
type ApprovalLogRow struct {
	Employee   string
	Department string
	Stage      string
	ActionBy   string
	Date       time.Time
}

// ReportData feeds the three-sheet admin report workbook.
type ReportData struct {
	Summary          AnalyticsSummary
	DepartmentCounts []DepartmentCount
	ApprovalLogs     []ApprovalLogRow
}

// RosterImportResult summarises a bulk user upload.
type RosterImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// RosterEntry is one parsed line of the uploaded employee roster.
type RosterEntry struct {
	ContractType string
	Location     string
	Country      string
	Practice     string
	Portfolio    string
	LineManager  string
	FullName     string
	Email        string
	EmployeeID   string
}

// AdminService implements the administrative read models and management
// operations.
type AdminService interface {
	Results(ctx context.Context) ([]VoteResult, error)
	DeclareWinner(ctx context.Context, nominationID string) (*ReviewResult, error)
	Winners(ctx context.Context) (*WinnersBoard, error)
	Analytics(ctx context.Context) (*AnalyticsReport, error)
	StarAwardRows(ctx context.Context) ([]StarAwardRow, error)
	ReportData(ctx context.Context) (*ReportData, error)
	// ImportRoster bulk-creates or updates users from an uploaded xlsx
	// roster; entries without an email are skipped.
	ImportRoster(ctx context.Context, r io.Reader) (*RosterImportResult, error)
	UpsertUser(ctx context.Context, entry RosterEntry) (created bool, err error)

	CreateTimeline(ctx context.Context, t *domain.Timeline) (*domain.Timeline, error)
	UpdateTimeline(ctx context.Context, t *domain.Timeline) error
	ListTimelines(ctx context.Context) ([]*domain.Timeline, error)
}
