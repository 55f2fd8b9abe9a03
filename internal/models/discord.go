package models

import (
	"time"
)

// DiscordConfigID is the fixed primary key of the singleton config row.
const DiscordConfigID = 1

// DiscordConfig is the single-row configuration for the leaderboard mirror:
// the webhook target and the last known message handle used for edits.
// MessageID is nil until the first successful create, and cleared again when
// the channel reports the message gone.
type DiscordConfig struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WebhookURL string    `gorm:"type:text" json:"webhook_url"`
	MessageID  *string   `gorm:"size:64" json:"message_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for DiscordConfig model.
func (DiscordConfig) TableName() string {
	return "discord_config"
}
