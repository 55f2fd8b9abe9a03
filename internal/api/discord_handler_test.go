package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

type mockDiscordConfigStore struct {
	cfg      *models.DiscordConfig
	upserted []string
}

func (m *mockDiscordConfigStore) Get() (*models.DiscordConfig, error) {
	return m.cfg, nil
}

func (m *mockDiscordConfigStore) Upsert(webhookURL string, messageID *string) error {
	m.upserted = append(m.upserted, webhookURL)
	m.cfg = &models.DiscordConfig{ID: models.DiscordConfigID, WebhookURL: webhookURL, MessageID: messageID}
	return nil
}

type mockSyncService struct {
	calls int
}

func (m *mockSyncService) UpdateLeaderboard(ctx context.Context) {
	m.calls++
}

func setupDiscordRouter(store *mockDiscordConfigStore, syncer *mockSyncService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDiscordHandler(store, syncer, logger.New("debug", "json", "stdout"))

	router := gin.New()
	router.GET("/discord/config", h.GetConfig)
	router.POST("/discord/config", h.SetConfig)
	router.POST("/discord/update-leaderboard", h.ForceSync)
	return router
}

func TestGetDiscordConfig(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		router := setupDiscordRouter(&mockDiscordConfigStore{}, &mockSyncService{})

		w := jsonRequest(router, http.MethodGet, "/discord/config", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("configured", func(t *testing.T) {
		router := setupDiscordRouter(&mockDiscordConfigStore{
			cfg: &models.DiscordConfig{ID: models.DiscordConfigID, WebhookURL: "https://hook"},
		}, &mockSyncService{})

		w := jsonRequest(router, http.MethodGet, "/discord/config", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://hook")
	})
}

func TestSetDiscordConfigResetsHandle(t *testing.T) {
	msgID := "msg-old"
	store := &mockDiscordConfigStore{
		cfg: &models.DiscordConfig{ID: models.DiscordConfigID, WebhookURL: "https://old", MessageID: &msgID},
	}
	router := setupDiscordRouter(store, &mockSyncService{})

	w := jsonRequest(router, http.MethodPost, "/discord/config", gin.H{"webhookUrl": "https://new-hook"})
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, "https://new-hook", store.cfg.WebhookURL)
	assert.Nil(t, store.cfg.MessageID)
}

func TestForceSync(t *testing.T) {
	syncer := &mockSyncService{}
	router := setupDiscordRouter(&mockDiscordConfigStore{}, syncer)

	w := jsonRequest(router, http.MethodPost, "/discord/update-leaderboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, syncer.calls)
}
