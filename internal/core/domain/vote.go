package domain

import "time"

// Vote records a single voter's choice among the finalists.
// Each voter casts at most one vote.
type Vote struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	VoterID      string    `json:"voter_id" bson:"voter_id"`
	NominationID string    `json:"nomination_id" bson:"nomination_id"`
	VotedAt      time.Time `json:"voted_at" bson:"voted_at"`
}
