package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/peoplehub/recognition-system/internal/api/metrics"
	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler exposes the administrative read models, exports and
// management operations.
type AdminHandler struct {
	service  ports.AdminService
	insights ports.InsightService
	exporter ports.ReportExporter
}

func NewAdminHandler(service ports.AdminService, insights ports.InsightService, exporter ports.ReportExporter) *AdminHandler {
	return &AdminHandler{service: service, insights: insights, exporter: exporter}
}

// Results returns the finalist vote tallies, highest first.
//
// @Summary      Get voting results
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.VoteResult
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/results [get]
func (h *AdminHandler) Results(c echo.Context) error {
	results, err := h.service.Results(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

type declareWinnerRequest struct {
	NominationID string `json:"nomination_id" validate:"required"`
}

// DeclareWinner awards the nominee behind a finalist nomination.
//
// @Summary      Declare the award winner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      declareWinnerRequest  true  "Finalist nomination id"
// @Success      200   {object}  reviewActionResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/declare-winner [post]
func (h *AdminHandler) DeclareWinner(c echo.Context) error {
	var req declareWinnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.DeclareWinner(c.Request().Context(), req.NominationID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviewActionResponse{
		Message:   result.Message,
		Nominee:   result.NomineeName,
		NewStatus: result.NewStatus,
		Updated:   result.Updated,
	})
}

// Winners returns the winners board grouped by furthest stage reached.
//
// @Summary      Get the winners board
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.WinnersBoard
// @Router       /v1/admin/winners [get]
func (h *AdminHandler) Winners(c echo.Context) error {
	board, err := h.service.Winners(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// Analytics returns the funnel summary, department breakdown and trends.
//
// @Summary      Get programme analytics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AnalyticsReport
// @Router       /v1/admin/analytics [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	report, err := h.service.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ExportStarAward streams the Star Award workbook.
//
// @Summary      Export the Star Award workbook
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/export/star-award [get]
func (h *AdminHandler) ExportStarAward(c echo.Context) error {
	rows, err := h.service.StarAwardRows(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="Star_Award_Export.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.exporter.StarAward(c.Response(), rows); err != nil {
		return err
	}
	metrics.ExportsGeneratedTotal.WithLabelValues("star_award").Inc()
	return nil
}

// ExportReport streams the three-sheet admin report workbook.
//
// @Summary      Export the admin report workbook
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/export/report [get]
func (h *AdminHandler) ExportReport(c echo.Context) error {
	data, err := h.service.ReportData(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="admin_report.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.exporter.AdminReport(c.Response(), data); err != nil {
		return err
	}
	metrics.ExportsGeneratedTotal.WithLabelValues("admin_report").Inc()
	return nil
}

type upsertUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name"`
	ContractType string `json:"contract_type"`
	Location     string `json:"location"`
	Country      string `json:"country"`
	Practice     string `json:"practice"`
	Portfolio    string `json:"portfolio"`
	LineManager  string `json:"line_manager"`
	EmployeeID   string `json:"employee_id"`
}

type upsertUserResponse struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}

// ManageUsers accepts either a multipart roster upload (field "file") or a
// single JSON user record and upserts by email.
//
// @Summary      Bulk-import or upsert users
// @Tags         admin
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  false  "Roster workbook (.xlsx)"
// @Success      200   {object}  upsertUserResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *AdminHandler) ManageUsers(c echo.Context) error {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
		}
		defer f.Close()

		result, err := h.service.ImportRoster(c.Request().Context(), f)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, upsertUserResponse{
			Message: "bulk upload complete",
			Mode:    "bulk",
			Created: result.Created,
			Updated: result.Updated,
		})
	}

	var req upsertUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.UpsertUser(c.Request().Context(), ports.RosterEntry{
		Email:        req.Email,
		FullName:     req.Name,
		ContractType: req.ContractType,
		Location:     req.Location,
		Country:      req.Country,
		Practice:     req.Practice,
		Portfolio:    req.Portfolio,
		LineManager:  req.LineManager,
		EmployeeID:   req.EmployeeID,
	})
	if err != nil {
		return err
	}

	resp := upsertUserResponse{Message: "user saved", Mode: "single"}
	if created {
		resp.Created = 1
	} else {
		resp.Updated = 1
	}
	return c.JSON(http.StatusOK, resp)
}

// Insights returns per-nominee AI summaries and sentiment.
//
// @Summary      Get AI candidate insights
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.CandidateInsight
// @Router       /v1/admin/insights [get]
func (h *AdminHandler) Insights(c echo.Context) error {
	insights, err := h.insights.CandidateInsights(c.Request().Context())
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.InsightRequestsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, insights)
}

type timelineRequest struct {
	Name             string    `json:"name"              validate:"required"`
	NominationStart  time.Time `json:"nomination_start"  validate:"required"`
	NominationEnd    time.Time `json:"nomination_end"    validate:"required"`
	CoordinatorStart time.Time `json:"coordinator_start" validate:"required"`
	CoordinatorEnd   time.Time `json:"coordinator_end"   validate:"required"`
	CommitteeStart   time.Time `json:"committee_start"   validate:"required"`
	CommitteeEnd     time.Time `json:"committee_end"     validate:"required"`
	VotingStart      time.Time `json:"voting_start"      validate:"required"`
	VotingEnd        time.Time `json:"voting_end"        validate:"required"`
	IsActive         bool      `json:"is_active"`
}

func (r *timelineRequest) toDomain(id string) *domain.Timeline {
	return &domain.Timeline{
		ID:               id,
		Name:             r.Name,
		NominationStart:  r.NominationStart,
		NominationEnd:    r.NominationEnd,
		CoordinatorStart: r.CoordinatorStart,
		CoordinatorEnd:   r.CoordinatorEnd,
		CommitteeStart:   r.CommitteeStart,
		CommitteeEnd:     r.CommitteeEnd,
		VotingStart:      r.VotingStart,
		VotingEnd:        r.VotingEnd,
		IsActive:         r.IsActive,
	}
}

// CreateTimeline creates an award cycle timeline.
//
// @Summary      Create a timeline
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      timelineRequest  true  "Timeline windows"
// @Success      201   {object}  domain.Timeline
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/timelines [post]
func (h *AdminHandler) CreateTimeline(c echo.Context) error {
	var req timelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.CreateTimeline(c.Request().Context(), req.toDomain(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateTimeline replaces an award cycle timeline.
//
// @Summary      Update a timeline
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Timeline id"
// @Param        body  body      timelineRequest  true  "Timeline windows"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/timelines/{id} [put]
func (h *AdminHandler) UpdateTimeline(c echo.Context) error {
	var req timelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateTimeline(c.Request().Context(), req.toDomain(c.Param("id"))); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "timeline updated"})
}

// ListTimelines returns all configured timelines, newest first.
//
// @Summary      List timelines
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Timeline
// @Router       /v1/admin/timelines [get]
func (h *AdminHandler) ListTimelines(c echo.Context) error {
	timelines, err := h.service.ListTimelines(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timelines)
}
