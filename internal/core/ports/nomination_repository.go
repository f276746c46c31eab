package ports

import (
	"context"
	"time"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// DepartmentCount is one row of the per-practice nomination breakdown.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// TrendPoint is one bucket of the submission trend aggregations.
type TrendPoint struct {
	Bucket string `json:"bucket"` // "2006-01-02" for daily, "2006-01" for monthly
	Count  int64  `json:"count"`
}

// NominationRepository defines persistence operations for nominations.
// List results are ordered by submission time descending and carry the
// nominator/nominee snapshots preloaded.
type NominationRepository interface {
	Create(ctx context.Context, n *domain.Nomination) (*domain.Nomination, error)
	FindByID(ctx context.Context, id string) (*domain.Nomination, error)
	// FindActiveByNominator returns the nominator's non-rejected nomination,
	// or domain.ErrNominationNotFound when none exists.
	FindActiveByNominator(ctx context.Context, nominatorID string) (*domain.Nomination, error)
	Update(ctx context.Context, n *domain.Nomination) error
	Delete(ctx context.Context, id string) error

	ListByStatus(ctx context.Context, statuses []domain.Status) ([]*domain.Nomination, error)
	ListExcludingStatus(ctx context.Context, statuses []domain.Status) ([]*domain.Nomination, error)
	ListAll(ctx context.Context) ([]*domain.Nomination, error)
	ListByNominee(ctx context.Context, nomineeID string) ([]*domain.Nomination, error)

	// UpdateStatusByNominee moves every nomination for the nominee to status
	// in a single statement and returns the number of rows touched.
	UpdateStatusByNominee(ctx context.Context, nomineeID string, status domain.Status) (int64, error)
	// CountDistinctFinalists counts distinct nominees currently holding
	// COMMITTEE_APPROVED, not nomination rows.
	CountDistinctFinalists(ctx context.Context) (int64, error)

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, statuses []domain.Status) (int64, error)
	CountReceived(ctx context.Context, nomineeID string) (int64, error)
	CountDistinctNominators(ctx context.Context) (int64, error)
	CountDistinctNomineesByStatus(ctx context.Context, statuses []domain.Status) (int64, error)

	DepartmentCounts(ctx context.Context) ([]DepartmentCount, error)
	DailyTrend(ctx context.Context) ([]TrendPoint, error)
	MonthlyTrend(ctx context.Context) ([]TrendPoint, error)
}

// ReviewListFilter names the coordinator queue views.
type ReviewListFilter string

const (
	ReviewFilterPending          ReviewListFilter = "pending"
	ReviewFilterCommitteePending ReviewListFilter = "committee_pending"
	ReviewFilterHistory          ReviewListFilter = "history"
)

// ReviewRow is one entry of the coordinator review queue.
type ReviewRow struct {
	ID            string                   `json:"id"`
	NomineeName   string                   `json:"nominee_name"`
	NomineeRole   string                   `json:"nominee_role"`
	NomineeDept   string                   `json:"nominee_dept"`
	NominatorName string                   `json:"nominator_name"`
	Reason        string                   `json:"reason"`
	SubmittedAt   time.Time                `json:"submitted_at"`
	Status        domain.Status            `json:"status"`
	Category      string                   `json:"category"`
	Selections    []domain.MetricSelection `json:"selected_metrics"`
}
