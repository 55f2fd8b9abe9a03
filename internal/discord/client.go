// Package discord provides a webhook client for the leaderboard mirror.
// Messages are created through the webhook with ?wait=true so Discord
// returns the message id, and edited later via the webhook's
// /messages/{id} endpoint.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/usss-rp/portal/pkg/logger"
)

// ErrMessageNotFound indicates the channel no longer has the message the
// stored handle points at. Callers clear the handle and create fresh on the
// next sync.
var ErrMessageNotFound = errors.New("discord message not found")

const requestTimeout = 10 * time.Second

// Embed represents one Discord embed block.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// EmbedFooter is the footer line of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// webhookPayload is the body sent on create and edit.
type webhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

// messageResponse is the subset of Discord's message object we read back.
type messageResponse struct {
	ID string `json:"id"`
}

// Client sends and edits webhook messages.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new Discord webhook client.
func NewClient(log *logger.Logger) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		log:        log,
	}
}

// CreateMessage posts a new message to the webhook and returns its id.
func (c *Client) CreateMessage(ctx context.Context, webhookURL string, embeds []Embed) (string, error) {
	body, err := json.Marshal(webhookPayload{Embeds: embeds})
	if err != nil {
		return "", fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL+"?wait=true", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send message to Discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("discord returned status %d on create", resp.StatusCode)
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("failed to decode Discord response: %w", err)
	}
	if msg.ID == "" {
		return "", fmt.Errorf("discord response carried no message id")
	}

	c.log.Debug().
		Str("message_id", msg.ID).
		Msg("Created Discord message")

	return msg.ID, nil
}

// EditMessage patches an existing webhook message in place. A 404 from the
// channel is returned as ErrMessageNotFound; every other failure is
// transient from the caller's perspective.
func (c *Client) EditMessage(ctx context.Context, webhookURL, messageID string, embeds []Embed) error {
	body, err := json.Marshal(webhookPayload{Embeds: embeds})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/messages/%s", webhookURL, messageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to edit Discord message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrMessageNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord returned status %d on edit", resp.StatusCode)
	}

	c.log.Debug().
		Str("message_id", messageID).
		Msg("Updated Discord message")

	return nil
}
