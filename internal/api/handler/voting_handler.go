package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peoplehub/recognition-system/internal/api/metrics"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// VotingHandler exposes the company-wide finalist vote.
type VotingHandler struct {
	service ports.VotingService
}

func NewVotingHandler(service ports.VotingService) *VotingHandler {
	return &VotingHandler{service: service}
}

type castVoteRequest struct {
	NominationID string `json:"nomination_id" validate:"required"`
}

// Ballot returns the deduplicated finalist list and the caller's vote state.
//
// @Summary      Get the voting ballot
// @Tags         voting
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Ballot
// @Failure      401  {object}  errorResponse
// @Router       /v1/voting/ballot [get]
func (h *VotingHandler) Ballot(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ballot, err := h.service.Ballot(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ballot)
}

// CastVote records the caller's single vote for a finalist.
//
// @Summary      Cast a vote
// @Tags         voting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      castVoteRequest  true  "Finalist nomination id"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/voting/vote [post]
func (h *VotingHandler) CastVote(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.CastVote(c.Request().Context(), userID, role, req.NominationID); err != nil {
		return err
	}

	metrics.VotesCastTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "vote recorded"})
}
