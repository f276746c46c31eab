package domain

import "time"

// Phase names the four award-cycle windows in order.
type Phase string

const (
	PhaseNomination  Phase = "NOMINATION"
	PhaseCoordinator Phase = "COORDINATOR"
	PhaseCommittee   Phase = "COMMITTEE"
	PhaseVoting      Phase = "VOTING"
)

// Timeline is the schedule of phase windows for one award cycle.
// At most one timeline is active at a time; activating one deactivates
// the rest as a storage side effect.
type Timeline struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	IsActive bool   `json:"is_active" bson:"is_active"`

	NominationStart  time.Time `json:"nomination_start" bson:"nomination_start"`
	NominationEnd    time.Time `json:"nomination_end" bson:"nomination_end"`
	CoordinatorStart time.Time `json:"coordinator_start" bson:"coordinator_start"`
	CoordinatorEnd   time.Time `json:"coordinator_end" bson:"coordinator_end"`
	CommitteeStart   time.Time `json:"committee_start" bson:"committee_start"`
	CommitteeEnd     time.Time `json:"committee_end" bson:"committee_end"`
	VotingStart      time.Time `json:"voting_start" bson:"voting_start"`
	VotingEnd        time.Time `json:"voting_end" bson:"voting_end"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Validate rejects timelines whose phases overlap out of sequence.
func (t *Timeline) Validate() error {
	if t.NominationEnd.After(t.CoordinatorStart) {
		return &ValidationError{Field: "coordinator_start", Message: "coordinator review cannot start before nominations end"}
	}
	if t.CoordinatorEnd.After(t.CommitteeStart) {
		return &ValidationError{Field: "committee_start", Message: "committee review cannot start before coordinator review ends"}
	}
	if t.CommitteeEnd.After(t.VotingStart) {
		return &ValidationError{Field: "voting_start", Message: "voting cannot start before committee review ends"}
	}
	return nil
}

// PhaseOpen reports whether the given phase window covers now.
func (t *Timeline) PhaseOpen(phase Phase, now time.Time) bool {
	var start, end time.Time
	switch phase {
	case PhaseNomination:
		start, end = t.NominationStart, t.NominationEnd
	case PhaseCoordinator:
		start, end = t.CoordinatorStart, t.CoordinatorEnd
	case PhaseCommittee:
		start, end = t.CommitteeStart, t.CommitteeEnd
	case PhaseVoting:
		start, end = t.VotingStart, t.VotingEnd
	default:
		return false
	}
	return !now.Before(start) && !now.After(end)
}
