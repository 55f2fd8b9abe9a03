package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// DiscordConfigStore interface for the channel configuration singleton.
type DiscordConfigStore interface {
	Get() (*models.DiscordConfig, error)
	Upsert(webhookURL string, messageID *string) error
}

// SyncService pushes the leaderboard to the configured channel.
type SyncService interface {
	UpdateLeaderboard(ctx context.Context)
}

// DiscordHandler handles channel configuration and manual sync requests.
type DiscordHandler struct {
	configs DiscordConfigStore
	syncer  SyncService
	log     *logger.Logger
}

// NewDiscordHandler creates a new channel configuration handler.
func NewDiscordHandler(configs DiscordConfigStore, syncer SyncService, log *logger.Logger) *DiscordHandler {
	return &DiscordHandler{
		configs: configs,
		syncer:  syncer,
		log:     log,
	}
}

// GetConfig returns the stored webhook configuration.
// GET /discord/config (admin).
func (h *DiscordHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configs.Get()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load channel config")
		errorResponse(c, http.StatusInternalServerError, "Failed to load channel configuration")
		return
	}
	if cfg == nil {
		errorResponse(c, http.StatusNotFound, "channel is not configured")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SetConfig stores the webhook URL. The message handle is reset so the
// next sync creates a fresh message in the new channel.
// POST /discord/config (admin).
func (h *DiscordHandler) SetConfig(c *gin.Context) {
	var input struct {
		WebhookURL string `json:"webhookUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "webhookUrl is required")
		return
	}

	if err := h.configs.Upsert(input.WebhookURL, nil); err != nil {
		h.log.Error().Err(err).Msg("Failed to store channel config")
		errorResponse(c, http.StatusInternalServerError, "Failed to store channel configuration")
		return
	}

	h.log.Info().Msg("Channel configuration updated")
	c.JSON(http.StatusOK, gin.H{"status": "configured"})
}

// ForceSync pushes the leaderboard to the channel immediately.
// POST /discord/update-leaderboard (admin).
func (h *DiscordHandler) ForceSync(c *gin.Context) {
	h.syncer.UpdateLeaderboard(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "sync triggered"})
}
