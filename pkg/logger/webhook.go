package logger

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// WebhookFooter is stamped on every embed the bot posts to a webhook.
const WebhookFooter = "Tambayan Bot"

// WebhookEmbed is the subset of a Discord embed used for log mirroring.
type WebhookEmbed struct {
	Title       string         `json:"title,omitempty"`
	Author      *WebhookAuthor `json:"author,omitempty"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp"`
	Footer      WebhookText    `json:"footer"`
}

type WebhookAuthor struct {
	Name string `json:"name"`
}

type WebhookText struct {
	Text string `json:"text"`
}

var webhookClient = &http.Client{Timeout: 10 * time.Second}

// PostEmbed delivers a single embed to a Discord webhook URL.
func PostEmbed(url string, embed WebhookEmbed) (int, error) {
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().Format(time.RFC3339)
	}
	if embed.Footer.Text == "" {
		embed.Footer.Text = WebhookFooter
	}

	body, err := json.Marshal(map[string]any{"embeds": []WebhookEmbed{embed}})
	if err != nil {
		return 0, fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := webhookClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// webhookHook forwards errors to the error webhook and everything else to
// the logs webhook. Delivery is asynchronous and best effort.
type webhookHook struct {
	errorURL string
	logsURL  string
	pending  sync.WaitGroup
}

func (h *webhookHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *webhookHook) Fire(e *logrus.Entry) error {
	level := entryLevel(e)
	url := h.logsURL
	if level <= LevelError {
		url = h.errorURL
	}
	if url == "" {
		return nil
	}

	embed := WebhookEmbed{
		Title:       fmt.Sprintf("[%s] %s", level.String(), entryPrefix(e)),
		Description: fmt.Sprintf("```%s```", e.Message),
		Color:       level.DiscordColor(),
		Timestamp:   e.Time.Format(time.RFC3339),
	}

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		_, _ = PostEmbed(url, embed)
	}()
	return nil
}

func (h *webhookHook) wait() {
	h.pending.Wait()
}
