package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status represents the lifecycle state of a nomination in the review pipeline.
type Status string

const (
	StatusSubmitted           Status = "NOMINATION_SUBMITTED"
	StatusCoordinatorApproved Status = "COORDINATOR_APPROVED"
	StatusCoordinatorRejected Status = "COORDINATOR_REJECTED"
	StatusCommitteeApproved   Status = "COMMITTEE_APPROVED"
	StatusCommitteeRejected   Status = "COMMITTEE_REJECTED"
	StatusAwarded             Status = "AWARDED"
)

// ReviewAction is a coordinator/admin decision applied to a nomination.
type ReviewAction string

const (
	ActionApprove ReviewAction = "APPROVE"
	ActionReject  ReviewAction = "REJECT"
	ActionUndo    ReviewAction = "UNDO"
)

// FinalistLimit caps the number of distinct nominees that may hold
// committee approval at the same time.
const FinalistLimit = 15

var (
	ErrNominationNotFound   = errors.New("nomination not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAlreadyNominated     = errors.New("you have already nominated someone")
	ErrNominationLocked     = errors.New("nomination has already been reviewed and cannot be changed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrFinalistLimit        = errors.New("finalist limit reached")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrAlreadyVoted         = errors.New("you already voted")
	ErrInvalidAction        = errors.New("invalid review action")
	ErrPhaseClosed          = errors.New("action not permitted in the current timeline phase")
	ErrTimelineNotFound     = errors.New("timeline not found")
)

// ValidationError reports a field-level submission problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// approvals maps the current status to the status granted by APPROVE.
var approvals = map[Status]Status{
	StatusSubmitted:           StatusCoordinatorApproved,
	StatusCoordinatorApproved: StatusCommitteeApproved,
	StatusCommitteeApproved:   StatusAwarded,
}

// rejections maps the current status to the status applied by REJECT.
var rejections = map[Status]Status{
	StatusSubmitted:           StatusCoordinatorRejected,
	StatusCoordinatorApproved: StatusCommitteeRejected,
}

// reversions is the fixed inverse map consulted by UNDO.
var reversions = map[Status]Status{
	StatusAwarded:             StatusCommitteeApproved,
	StatusCommitteeApproved:   StatusCoordinatorApproved,
	StatusCoordinatorApproved: StatusSubmitted,
	StatusCoordinatorRejected: StatusSubmitted,
	StatusCommitteeRejected:   StatusCoordinatorApproved,
}

// NextStatus computes the status a nomination in current moves to under
// action. It is the single transition table for the whole review pipeline;
// callers must not hardcode status literals.
func NextStatus(current Status, action ReviewAction) (Status, error) {
	switch action {
	case ActionApprove:
		next, ok := approvals[current]
		if !ok {
			return "", fmt.Errorf("%w: cannot approve from state %s", ErrInvalidTransition, current)
		}
		return next, nil
	case ActionReject:
		next, ok := rejections[current]
		if !ok {
			return "", fmt.Errorf("%w: cannot reject from state %s", ErrInvalidTransition, current)
		}
		return next, nil
	case ActionUndo:
		next, ok := reversions[current]
		if !ok {
			return "", fmt.Errorf("%w: cannot undo from state %s", ErrInvalidTransition, current)
		}
		return next, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
}

// Rejected reports whether s is one of the rejection states.
func (s Status) Rejected() bool {
	return s == StatusCoordinatorRejected || s == StatusCommitteeRejected
}

// Approved reports whether s counts as approved for reporting purposes
// (passed at least the coordinator stage and was not later rejected).
func (s Status) Approved() bool {
	switch s {
	case StatusCoordinatorApproved, StatusCommitteeApproved, StatusAwarded:
		return true
	}
	return false
}

// PassedCoordinator reports whether s implies a coordinator approval happened,
// including states reached after one (committee rejection included).
func (s Status) PassedCoordinator() bool {
	switch s {
	case StatusCoordinatorApproved, StatusCommitteeApproved, StatusCommitteeRejected, StatusAwarded:
		return true
	}
	return false
}

// MetricSelection is one {category, metric} pair chosen by the nominator.
type MetricSelection struct {
	Category string `json:"category" bson:"category"`
	Metric   string `json:"metric" bson:"metric"`
}

// Nomination is a directed recognition edge from nominator to nominee.
type Nomination struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	NominatorID string            `json:"nominator_id" bson:"nominator_id"`
	NomineeID   string            `json:"nominee_id" bson:"nominee_id"`
	Status      Status            `json:"status" bson:"status"`
	Selections  []MetricSelection `json:"selected_metrics" bson:"selected_metrics"`
	Reason      string            `json:"reason" bson:"reason"`
	SubmittedAt time.Time         `json:"submitted_at" bson:"submitted_at"`

	// Denormalised actor snapshots, populated by the repository on reads.
	Nominator *User `json:"-" bson:"-"`
	Nominee   *User `json:"-" bson:"-"`
}

// Active reports whether the nomination still blocks its nominator from
// submitting another one. A nomination stays active until it is rejected.
// This is the single active-nomination policy shared by submit, status,
// edit and withdraw.
func (n *Nomination) Active() bool {
	return !n.Status.Rejected()
}

// ActiveStatuses returns the statuses considered active under the
// one-nomination-per-nominator policy, for use in storage filters.
func ActiveStatuses() []Status {
	return []Status{StatusSubmitted, StatusCoordinatorApproved, StatusCommitteeApproved, StatusAwarded}
}

// Locked reports whether the nomination may no longer be edited or
// withdrawn by its nominator (any review action locks it).
func (n *Nomination) Locked() bool {
	return n.Status != StatusSubmitted
}
