package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peoplehub/recognition-system/internal/api/metrics"
	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// ReviewHandler exposes the coordinator/committee review queue and actions.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type reviewActionRequest struct {
	NominationID string `json:"nomination_id" validate:"required"`
	Action       string `json:"action"        validate:"required,oneof=APPROVE REJECT UNDO"`
}

type reviewActionResponse struct {
	Message   string        `json:"message"`
	Nominee   string        `json:"nominee"`
	NewStatus domain.Status `json:"new_status"`
	Updated   int64         `json:"updated"`
}

// Queue returns one of the named review views.
//
// @Summary      Get the review queue
// @Tags         review
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query     string  false  "View: pending, committee_pending or history"  default(pending)
// @Success      200     {array}   ports.ReviewRow
// @Failure      403     {object}  errorResponse
// @Router       /v1/review/queue [get]
func (h *ReviewHandler) Queue(c echo.Context) error {
	filter := ports.ReviewListFilter(c.QueryParam("filter"))
	if filter == "" {
		filter = ports.ReviewFilterPending
	}

	rows, err := h.service.Queue(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Act applies an APPROVE/REJECT/UNDO decision.
//
// @Summary      Act on a nomination
// @Tags         review
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reviewActionRequest  true  "Decision"
// @Success      200   {object}  reviewActionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/review/act [post]
func (h *ReviewHandler) Act(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reviewActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Act(c.Request().Context(), ports.ReviewActionInput{
		NominationID: req.NominationID,
		Action:       domain.ReviewAction(req.Action),
		ActorRole:    role,
	})
	if err != nil {
		metrics.ReviewActionsTotal.WithLabelValues(req.Action, "error").Inc()
		return err
	}

	metrics.ReviewActionsTotal.WithLabelValues(req.Action, "ok").Inc()
	return c.JSON(http.StatusOK, reviewActionResponse{
		Message:   result.Message,
		Nominee:   result.NomineeName,
		NewStatus: result.NewStatus,
		Updated:   result.Updated,
	})
}
