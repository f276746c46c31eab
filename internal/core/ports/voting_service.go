package ports

import "context"

// Finalist is one deduplicated entry on the voting ballot.
type Finalist struct {
	NominationID  string `json:"id"`
	NomineeName   string `json:"nominee_name"`
	NomineeDept   string `json:"nominee_dept"`
	NomineeRole   string `json:"nominee_role"`
	NominatorName string `json:"nominator_name"`
	Reason        string `json:"reason"`
}

// Ballot is the voting view for one voter.
type Ballot struct {
	HasVoted  bool       `json:"has_voted"`
	Finalists []Finalist `json:"finalists"`
}

// VotingService implements company-wide finalist voting.
type VotingService interface {
	Ballot(ctx context.Context, voterID string) (*Ballot, error)
	// CastVote records a vote; admins cannot vote, repeat votes and
	// non-finalist targets are rejected.
	CastVote(ctx context.Context, voterID, voterRole, nominationID string) error
}
