package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peoplehub/recognition-system/internal/api/metrics"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// NominationHandler handles HTTP requests for the submission side of the
// programme: taxonomy, candidate browsing, and the nominator's own nomination.
type NominationHandler struct {
	service ports.NominationService
}

func NewNominationHandler(service ports.NominationService) *NominationHandler {
	return &NominationHandler{service: service}
}

// Criteria returns the category -> metrics taxonomy.
//
// @Summary      Get nomination criteria
// @Tags         nominations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]string
// @Router       /v1/nominations/criteria [get]
func (h *NominationHandler) Criteria(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Criteria(c.Request().Context()))
}

// Candidates returns a filtered page of nominable colleagues.
//
// @Summary      Browse nominable colleagues
// @Tags         nominations
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Username or employee id prefix"
// @Param        practice   query     string  false  "Practice filter"
// @Param        portfolio  query     string  false  "Portfolio filter"
// @Param        location   query     string  false  "Location filter"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  candidatesResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/nominations/candidates [get]
func (h *NominationHandler) Candidates(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.Candidates(c.Request().Context(), userID, ports.ListUsersFilter{
		Search:    c.QueryParam("search"),
		Practice:  c.QueryParam("practice"),
		Portfolio: c.QueryParam("portfolio"),
		Location:  c.QueryParam("location"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	totalPages := int(result.Total) / result.Limit
	if int(result.Total)%result.Limit != 0 {
		totalPages++
	}

	return c.JSON(http.StatusOK, candidatesResponse{
		Data: result.Users,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: totalPages,
		},
	})
}

// FilterOptions returns the distinct candidate filter values.
//
// @Summary      Get candidate filter options
// @Tags         nominations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.FilterOptions
// @Router       /v1/nominations/filters [get]
func (h *NominationHandler) FilterOptions(c echo.Context) error {
	opts, err := h.service.FilterOptions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opts)
}

// Submit creates the caller's nomination.
//
// @Summary      Submit a nomination
// @Tags         nominations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitNominationRequest  true  "Nomination"
// @Success      201   {object}  nominationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/nominations [post]
func (h *NominationHandler) Submit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitNominationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nom, err := h.service.Submit(c.Request().Context(), ports.SubmitNominationInput{
		NominatorID: userID,
		NomineeID:   req.NomineeID,
		Selections:  req.Selections,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.NominationsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, toNominationResponse(nom))
}

// Status returns the caller's own nomination state.
//
// @Summary      Get own nomination status
// @Tags         nominations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  nominationStatusResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/nominations/status [get]
func (h *NominationHandler) Status(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	st, err := h.service.Status(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := nominationStatusResponse{
		HasNominated:  st.HasNominated,
		Reason:        st.Reason,
		ReceivedCount: st.ReceivedCount,
	}
	if st.HasNominated {
		resp.Nominee = st.Nominee
		resp.SubmittedAt = &st.SubmittedAt
	}
	return c.JSON(http.StatusOK, resp)
}

// Edit updates the caller's not-yet-reviewed nomination.
//
// @Summary      Edit own nomination
// @Tags         nominations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editNominationRequest  true  "Fields to change"
// @Success      200   {object}  nominationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/nominations [put]
func (h *NominationHandler) Edit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req editNominationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	nom, err := h.service.Edit(c.Request().Context(), ports.EditNominationInput{
		NominatorID: userID,
		NomineeID:   req.NomineeID,
		Selections:  req.Selections,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNominationResponse(nom))
}

// Withdraw deletes the caller's not-yet-reviewed nomination.
//
// @Summary      Withdraw own nomination
// @Tags         nominations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/nominations [delete]
func (h *NominationHandler) Withdraw(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Withdraw(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "nomination withdrawn"})
}
