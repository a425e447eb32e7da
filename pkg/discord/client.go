package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultAPIBase is the Discord REST API root used for message edits.
const DefaultAPIBase = "https://discord.com/api/v10"

// ErrWebhookNotConfigured is returned when no webhook URL is set. Handlers
// map it to a configuration error rather than an upstream failure.
var ErrWebhookNotConfigured = errors.New("URL du webhook Discord non configurée")

// Config holds the Discord credentials and endpoints.
type Config struct {
	WebhookURL string
	BotToken   string
	APIBase    string // defaults to DefaultAPIBase
}

// Client posts order notifications through a webhook and edits previously
// posted messages through the bot API. A single outbound call per action,
// no retries.
type Client struct {
	webhookURL string
	botToken   string
	apiBase    string
	httpClient *http.Client
}

// NewClient creates a new Discord client.
func NewClient(cfg Config) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		webhookURL: cfg.WebhookURL,
		botToken:   cfg.BotToken,
		apiBase:    apiBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExecuteWebhook posts a message through the configured webhook and returns
// the created message. The wait flag makes Discord return the message body,
// which carries the ids needed to edit it later.
func (c *Client) ExecuteWebhook(msg WebhookMessage) (*Message, error) {
	if c.webhookURL == "" {
		return nil, ErrWebhookNotConfigured
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook message: %w", err)
	}

	resp, err := c.httpClient.Post(c.webhookURL+"?wait=true", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to execute webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		log.Printf("Discord webhook returned status %d: %s", resp.StatusCode, errText)
		return nil, fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	var created Message
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode webhook response: %w", err)
	}
	return &created, nil
}

// EditMessage rewrites the embeds and components of a previously posted
// message using the bot token.
func (c *Client) EditMessage(channelID, messageID string, edit WebhookMessage) error {
	if c.botToken == "" {
		return errors.New("discord bot token is not configured")
	}

	body, err := json.Marshal(edit)
	if err != nil {
		return fmt.Errorf("failed to marshal message edit: %w", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages/%s", c.apiBase, channelID, messageID)
	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build edit request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to edit message %s: %w", messageID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		log.Printf("Discord edit of message %s returned status %d: %s", messageID, resp.StatusCode, errText)
		return fmt.Errorf("failed to update message: %d", resp.StatusCode)
	}
	return nil
}
