package handler

import (
	"time"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

type submitNominationRequest struct {
	NomineeID  string                   `json:"nominee_id"       validate:"required"`
	Selections []domain.MetricSelection `json:"selected_metrics" validate:"required,min=1"`
	Reason     string                   `json:"reason"           validate:"required"`
}

type editNominationRequest struct {
	NomineeID  string                   `json:"nominee_id"`
	Selections []domain.MetricSelection `json:"selected_metrics"`
	Reason     string                   `json:"reason"`
}

// nominationResponse is the transport view of one nomination, with the
// derived category attached.
type nominationResponse struct {
	ID          string                   `json:"id"`
	NomineeID   string                   `json:"nominee_id"`
	Status      domain.Status            `json:"status"`
	Selections  []domain.MetricSelection `json:"selected_metrics"`
	Category    string                   `json:"category"`
	Reason      string                   `json:"reason"`
	SubmittedAt time.Time                `json:"submitted_at"`
}

func toNominationResponse(n *domain.Nomination) nominationResponse {
	return nominationResponse{
		ID:          n.ID,
		NomineeID:   n.NomineeID,
		Status:      n.Status,
		Selections:  n.Selections,
		Category:    domain.DeriveCategory(n.Selections),
		Reason:      n.Reason,
		SubmittedAt: n.SubmittedAt,
	}
}

type nominationStatusResponse struct {
	HasNominated  bool         `json:"has_nominated"`
	Nominee       *domain.User `json:"nominee,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	SubmittedAt   *time.Time   `json:"submitted_at,omitempty"`
	ReceivedCount int64        `json:"received_count"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type candidatesResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
