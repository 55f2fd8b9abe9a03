package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/usss-rp/portal/internal/auth"
	"github.com/usss-rp/portal/internal/config"
	"github.com/usss-rp/portal/pkg/logger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Reports   *ReportHandler
	Tasks     *TaskHandler
	Reference *ReferenceHandler
	Users     *UserHandler
	Discord   *DiscordHandler
	Health    *HealthHandler
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(cfg *config.Config, mw *auth.Middleware, h *Handlers, log *logger.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), RequestMetrics())

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")
	api.GET("/health", h.Health.Check)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/register", h.Auth.Register)

	authed := api.Group("/", mw.Authenticate())
	admin := authed.Group("/", mw.RequireAdmin())

	authed.POST("/auth/logout", h.Auth.Logout)

	// Reports. Fixed segments must be registered before the wildcard ones.
	authed.POST("/reports", h.Reports.Submit)
	authed.GET("/reports/my", h.Reports.ListMine)
	authed.GET("/reports/stats", h.Reports.MyStats)
	authed.GET("/reports/leaderboard", h.Reports.Leaderboard)
	authed.PATCH("/reports/:id", h.Reports.Update)
	admin.GET("/reports", h.Reports.ListAll)
	admin.GET("/reports/admin-stats", h.Reports.AdminStats)
	admin.GET("/reports/stats/:userId", h.Reports.UserStats)
	admin.PATCH("/reports/:id/status", h.Reports.UpdateStatus)

	// Task type catalog.
	authed.GET("/tasks", h.Tasks.List)
	admin.POST("/tasks", h.Tasks.Create)
	admin.PATCH("/tasks/:id", h.Tasks.Update)
	admin.DELETE("/tasks/:id", h.Tasks.Delete)

	// Reference catalogs.
	authed.GET("/ranks", h.Reference.ListRanks)
	admin.POST("/ranks", h.Reference.CreateRank)
	admin.PATCH("/ranks/:id", h.Reference.UpdateRank)
	admin.DELETE("/ranks/:id", h.Reference.DeleteRank)

	authed.GET("/departments", h.Reference.ListDepartments)
	admin.POST("/departments", h.Reference.CreateDepartment)
	admin.PATCH("/departments/:id", h.Reference.UpdateDepartment)
	admin.DELETE("/departments/:id", h.Reference.DeleteDepartment)

	// Member directory. /users/ranks is the open read alias of the rank
	// catalog used by the profile form.
	authed.GET("/users/ranks", h.Reference.ListRanks)
	authed.GET("/users/me", h.Users.Me)
	authed.PATCH("/users/:id", h.Users.Update)
	admin.GET("/users", h.Users.List)
	admin.DELETE("/users/:id", h.Users.Delete)

	// Channel mirror controls.
	admin.GET("/discord/config", h.Discord.GetConfig)
	admin.POST("/discord/config", h.Discord.SetConfig)
	admin.POST("/discord/update-leaderboard", h.Discord.ForceSync)

	return router
}
