package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usss-rp/portal/internal/auth"
	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/internal/service/leaderboard"
	"github.com/usss-rp/portal/internal/service/reports"
	"github.com/usss-rp/portal/internal/service/stats"
	"github.com/usss-rp/portal/pkg/logger"
)

// ReportService interface for report lifecycle operations.
type ReportService interface {
	Submit(ctx context.Context, userID string, input reports.SubmitInput) (*models.Report, error)
	ListAll() ([]models.Report, error)
	ListMine(userID string) ([]models.Report, error)
	Update(ctx context.Context, actor *models.User, reportID string, input reports.UpdateInput) (*models.Report, error)
	UpdateStatus(ctx context.Context, reportID, status string) (*models.Report, error)
}

// StatsService interface for point aggregation.
type StatsService interface {
	UserStats(userID string, weekOffset int) (*stats.UserStats, error)
	OrgStats(now time.Time) (*stats.OrgStats, error)
}

// LeaderboardService interface for ranked summaries.
type LeaderboardService interface {
	Entries(now time.Time) ([]leaderboard.Entry, error)
}

// ReportHandler handles report lifecycle and statistics requests.
type ReportHandler struct {
	reports     ReportService
	stats       StatsService
	leaderboard LeaderboardService
	log         *logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports ReportService, stats StatsService, leaderboard LeaderboardService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reports:     reports,
		stats:       stats,
		leaderboard: leaderboard,
		log:         log,
	}
}

// Submit records a new activity report for the current user.
// POST /reports.
func (h *ReportHandler) Submit(c *gin.Context) {
	var input reports.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "typeId, proofUrl, and date are required")
		return
	}

	user := auth.CurrentUser(c)
	report, err := h.reports.Submit(c.Request.Context(), user.ID, input)
	if err != nil {
		serviceError(c, err, "Failed to submit report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListAll returns every report, newest first.
// GET /reports (admin).
func (h *ReportHandler) ListAll(c *gin.Context) {
	list, err := h.reports.ListAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list reports")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve reports")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListMine returns the current user's reports.
// GET /reports/my.
func (h *ReportHandler) ListMine(c *gin.Context) {
	user := auth.CurrentUser(c)
	list, err := h.reports.ListMine(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list own reports")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve reports")
		return
	}
	c.JSON(http.StatusOK, list)
}

// MyStats returns the current user's dashboard statistics.
// GET /reports/stats?offset=N.
func (h *ReportHandler) MyStats(c *gin.Context) {
	offset, err := h.parseOffset(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.CurrentUser(c)
	result, err := h.stats.UserStats(user.ID, offset)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to compute user stats")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, result)
}

// UserStats returns any user's dashboard statistics.
// GET /reports/stats/:userId?offset=N (admin).
func (h *ReportHandler) UserStats(c *gin.Context) {
	offset, err := h.parseOffset(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.Param("userId")
	result, err := h.stats.UserStats(userID, offset)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute user stats")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminStats returns the organization-wide counters.
// GET /reports/admin-stats (admin).
func (h *ReportHandler) AdminStats(c *gin.Context) {
	result, err := h.stats.OrgStats(time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute org stats")
		errorResponse(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Leaderboard returns the ranked contributor list.
// GET /reports/leaderboard.
func (h *ReportHandler) Leaderboard(c *gin.Context) {
	entries, err := h.leaderboard.Entries(time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build leaderboard")
		errorResponse(c, http.StatusInternalServerError, "Failed to build leaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Update applies a partial edit to a report.
// PATCH /reports/:id.
func (h *ReportHandler) Update(c *gin.Context) {
	var input reports.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid report payload")
		return
	}

	user := auth.CurrentUser(c)
	report, err := h.reports.Update(c.Request.Context(), user, c.Param("id"), input)
	if err != nil {
		serviceError(c, err, "Failed to update report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpdateStatus transitions a report's review status.
// PATCH /reports/:id/status (admin).
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "status is required")
		return
	}

	report, err := h.reports.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		serviceError(c, err, "Failed to update report status")
		return
	}
	c.JSON(http.StatusOK, report)
}

// parseOffset reads the week offset query parameter.
func (h *ReportHandler) parseOffset(c *gin.Context) (int, error) {
	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid offset parameter: %s", offsetStr)
	}
	return offset, nil
}
