// Package waitlist collects waitlist sign-ups and forwards them to a chat webhook.
package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/julianstephens/gymsimple/internal/logger"
)

const subscriberTitle = "NEW waitlist subscriber - GymSimple! ✅"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email looks deliverable after trimming
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embed struct {
	Title  string       `json:"title"`
	Fields []embedField `json:"fields"`
}

// WebhookPayload is the Discord-style message body
type WebhookPayload struct {
	Embeds []embed `json:"embeds"`
}

func NewSubscriberPayload(email string) WebhookPayload {
	return WebhookPayload{Embeds: []embed{{
		Title:  subscriberTitle,
		Fields: []embedField{{Name: "Email", Value: email}},
	}}}
}

type Notifier struct {
	url    string
	client *http.Client
}

func NewNotifier(url string, timeout time.Duration) *Notifier {
	return &Notifier{url: url, client: &http.Client{Timeout: timeout}}
}

// Send posts the subscriber to the webhook
func (n *Notifier) Send(ctx context.Context, email string) error {
	if n.url == "" {
		return fmt.Errorf("webhook URL is not configured")
	}
	body, err := json.Marshal(NewSubscriberPayload(email))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %s", resp.Status)
	}
	return nil
}

// Notify sends and swallows the error. Sign-ups never fail because the webhook did.
func (n *Notifier) Notify(ctx context.Context, email string) bool {
	if err := n.Send(ctx, email); err != nil {
		logger.Error("Waitlist webhook failed", "error", err)
		return false
	}
	logger.Debug("Waitlist webhook delivered")
	return true
}
