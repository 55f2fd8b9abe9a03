package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/usss-rp/portal/internal/models"
)

// DiscordConfigRepository handles the singleton webhook config row.
type DiscordConfigRepository struct {
	db *DB
}

// NewDiscordConfigRepository creates a new discord config repository.
func NewDiscordConfigRepository(db *DB) *DiscordConfigRepository {
	return &DiscordConfigRepository{db: db}
}

// Get retrieves the singleton config row, or nil when it has never been set.
func (r *DiscordConfigRepository) Get() (*models.DiscordConfig, error) {
	var cfg models.DiscordConfig
	err := r.db.Where("id = ?", models.DiscordConfigID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get discord config: %w", err)
	}
	return &cfg, nil
}

// Upsert creates the singleton row if absent, otherwise updates it in place.
func (r *DiscordConfigRepository) Upsert(webhookURL string, messageID *string) error {
	existing, err := r.Get()
	if err != nil {
		return err
	}

	if existing == nil {
		cfg := models.DiscordConfig{
			ID:         models.DiscordConfigID,
			WebhookURL: webhookURL,
			MessageID:  messageID,
		}
		if err := r.db.Create(&cfg).Error; err != nil {
			return fmt.Errorf("failed to create discord config: %w", err)
		}
		return nil
	}

	existing.WebhookURL = webhookURL
	existing.MessageID = messageID
	if err := r.db.Save(existing).Error; err != nil {
		return fmt.Errorf("failed to update discord config: %w", err)
	}
	return nil
}

// ClearMessageID drops the stored message handle so the next sync creates
// a fresh message.
func (r *DiscordConfigRepository) ClearMessageID() error {
	err := r.db.Model(&models.DiscordConfig{}).
		Where("id = ?", models.DiscordConfigID).
		Update("message_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear discord message id: %w", err)
	}
	return nil
}
