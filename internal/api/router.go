package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/peoplehub/recognition-system/internal/api/handler"
	"github.com/peoplehub/recognition-system/internal/api/middleware"
	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// Deps carries the constructed handlers and shared infrastructure the
// router needs. All wiring happens in cmd/server.
type Deps struct {
	JWTSecret string
	Log       zerolog.Logger

	Mongo *mongo.Database
	Redis *redis.Client

	Auth          *handler.AuthHandler
	Nominations   *handler.NominationHandler
	Review        *handler.ReviewHandler
	Voting        *handler.VotingHandler
	Notifications *handler.NotificationHandler
	Admin         *handler.AdminHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recognition"))

	auth := middleware.Auth(d.JWTSecret)
	reviewer := middleware.MinRole(domain.RoleCoordinator)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// Probes, metrics and docs.
	health := handler.NewHealthHandler()
	ready := handler.NewReadinessHandler(d.Mongo, d.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", ready.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/v1")

	// Auth.
	v1.POST("/auth/register", d.Auth.Register)
	v1.POST("/auth/login", d.Auth.Login)
	v1.POST("/auth/refresh", d.Auth.Refresh)
	v1.GET("/auth/profile", d.Auth.Profile, auth)
	v1.PUT("/auth/profile", d.Auth.UpdateProfile, auth)

	// Nominations.
	noms := v1.Group("/nominations", auth)
	noms.GET("/criteria", d.Nominations.Criteria)
	noms.GET("/candidates", d.Nominations.Candidates)
	noms.GET("/filters", d.Nominations.FilterOptions)
	noms.GET("/status", d.Nominations.Status)
	noms.POST("", d.Nominations.Submit)
	noms.PUT("", d.Nominations.Edit)
	noms.DELETE("", d.Nominations.Withdraw)

	// Review queue (coordinators and admins).
	review := v1.Group("/review", auth, reviewer)
	review.GET("/queue", d.Review.Queue)
	review.POST("/act", d.Review.Act)

	// Voting.
	voting := v1.Group("/voting", auth)
	voting.GET("/ballot", d.Voting.Ballot)
	voting.POST("/vote", d.Voting.CastVote)

	// Notifications.
	notifs := v1.Group("/notifications", auth)
	notifs.GET("", d.Notifications.List)
	notifs.POST("/:id/read", d.Notifications.MarkRead)

	// Admin read models are open to coordinators too; mutations stay
	// admin-only.
	admin := v1.Group("/admin", auth)
	admin.GET("/results", d.Admin.Results, reviewer)
	admin.GET("/winners", d.Admin.Winners, reviewer)
	admin.GET("/analytics", d.Admin.Analytics, reviewer)
	admin.GET("/insights", d.Admin.Insights, reviewer)
	admin.GET("/export/star-award", d.Admin.ExportStarAward, reviewer)
	admin.GET("/export/report", d.Admin.ExportReport, reviewer)
	admin.GET("/timelines", d.Admin.ListTimelines, reviewer)

	admin.POST("/declare-winner", d.Admin.DeclareWinner, adminOnly)
	admin.POST("/users", d.Admin.ManageUsers, adminOnly)
	admin.POST("/timelines", d.Admin.CreateTimeline, adminOnly)
	admin.PUT("/timelines/:id", d.Admin.UpdateTimeline, adminOnly)

	return e
}
