// Package sync reconciles the computed leaderboard with the Discord mirror
// message: create when no handle is stored, edit in place otherwise, and
// self-heal when the stored handle goes stale.
package sync

import (
	"context"
	"errors"
	"time"

	"github.com/usss-rp/portal/internal/discord"
	"github.com/usss-rp/portal/internal/metrics"
	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/internal/service/leaderboard"
	"github.com/usss-rp/portal/pkg/logger"
)

// ChannelClient sends and edits webhook messages.
type ChannelClient interface {
	CreateMessage(ctx context.Context, webhookURL string, embeds []discord.Embed) (string, error)
	EditMessage(ctx context.Context, webhookURL, messageID string, embeds []discord.Embed) error
}

// ConfigStore persists the singleton webhook config row.
type ConfigStore interface {
	Get() (*models.DiscordConfig, error) // nil, nil when absent
	Upsert(webhookURL string, messageID *string) error
	ClearMessageID() error
}

// EntrySource produces the current ranked leaderboard.
type EntrySource interface {
	Entries(now time.Time) ([]leaderboard.Entry, error)
}

// Service drives the create-vs-edit reconciliation. Each invocation is
// independent; with unchanged data the rendered blocks are byte-identical,
// so re-running is harmless.
type Service struct {
	channel     ChannelClient
	configs     ConfigStore
	entries     EntrySource
	fallbackURL string
	lang        string
	log         *logger.Logger
}

// NewService creates a new sync service. fallbackURL is used when the
// database config row carries no webhook URL.
func NewService(
	channel ChannelClient,
	configs ConfigStore,
	entries EntrySource,
	fallbackURL string,
	lang string,
	log *logger.Logger,
) *Service {
	return &Service{
		channel:     channel,
		configs:     configs,
		entries:     entries,
		fallbackURL: fallbackURL,
		lang:        lang,
		log:         log,
	}
}

// UpdateLeaderboard renders the current leaderboard and pushes it to the
// channel. Failures are logged and swallowed: a sync problem must never
// fail the status-change request that triggered it.
func (s *Service) UpdateLeaderboard(ctx context.Context) {
	if err := s.run(ctx, time.Now()); err != nil {
		metrics.RecordLeaderboardSync("error")
		s.log.Error().Err(err).Msg("Leaderboard sync failed")
	}
}

// run performs a single reconciliation pass.
func (s *Service) run(ctx context.Context, now time.Time) error {
	cfg, err := s.configs.Get()
	if err != nil {
		return err
	}

	webhookURL := s.fallbackURL
	var messageID *string
	if cfg != nil {
		if cfg.WebhookURL != "" {
			webhookURL = cfg.WebhookURL
		}
		messageID = cfg.MessageID
	}

	if webhookURL == "" {
		metrics.RecordLeaderboardSync("skipped")
		s.log.Warn().Msg("No Discord webhook URL configured (neither in DB nor env)")
		return nil
	}

	entries, err := s.entries.Entries(now)
	if err != nil {
		return err
	}
	embeds := leaderboard.FormatEmbeds(entries, now, s.lang)

	if messageID != nil {
		return s.edit(ctx, webhookURL, *messageID, embeds)
	}
	return s.create(ctx, webhookURL, embeds)
}

// edit patches the stored message. A stale handle clears the stored id and
// leaves creation to the next sync; any other failure keeps the handle so
// a transient error cannot corrupt state.
func (s *Service) edit(ctx context.Context, webhookURL, messageID string, embeds []discord.Embed) error {
	err := s.channel.EditMessage(ctx, webhookURL, messageID, embeds)
	if err == nil {
		metrics.RecordLeaderboardSync("edited")
		s.log.Info().Str("message_id", messageID).Msg("Leaderboard message updated")
		return nil
	}

	if errors.Is(err, discord.ErrMessageNotFound) {
		s.log.Warn().
			Str("message_id", messageID).
			Msg("Leaderboard message gone, clearing stored handle")
		if clearErr := s.configs.ClearMessageID(); clearErr != nil {
			return clearErr
		}
		metrics.RecordLeaderboardSync("handle_cleared")
		return nil
	}

	return err
}

func (s *Service) create(ctx context.Context, webhookURL string, embeds []discord.Embed) error {
	id, err := s.channel.CreateMessage(ctx, webhookURL, embeds)
	if err != nil {
		return err
	}

	if err := s.configs.Upsert(webhookURL, &id); err != nil {
		return err
	}

	metrics.RecordLeaderboardSync("created")
	s.log.Info().Str("message_id", id).Msg("Leaderboard message created")
	return nil
}
