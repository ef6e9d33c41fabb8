// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Email is one outbound message. TextBody is optional; the notification
// templates in this package produce HTML only, matching what recipients
// actually render.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers an email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, e Email) (messageID string, err error)
}

// ErrNoCredential is returned by senders that were constructed without
// an API key. The dispatcher records it in the email log instead of
// surfacing it to callers.
var ErrNoCredential = errors.New("credential not configured")

const (
	resendEndpoint = "https://api.resend.com/emails"
	sendTimeout    = 10 * time.Second
)

// Resend sends email through the Resend HTTP API.
type Resend struct {
	apiKey    string
	fromEmail string
	client    *http.Client
}

// NewResend builds a Resend sender. An empty apiKey yields a sender
// whose Send always returns ErrNoCredential; fromEmail falls back to
// the platform default address.
func NewResend(apiKey, fromEmail string) *Resend {
	if fromEmail == "" {
		fromEmail = "notifications@stars.nimble.la"
	}
	return &Resend{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		client:    &http.Client{Timeout: sendTimeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send posts the email to Resend and returns the message id.
func (s *Resend) Send(ctx context.Context, e Email) (string, error) {
	if s.apiKey == "" {
		return "", ErrNoCredential
	}

	payload, err := json.Marshal(resendRequest{
		From:    fmt.Sprintf("Nimble S.T.A.R.S <%s>", s.fromEmail),
		To:      []string{e.To},
		Subject: e.Subject,
		HTML:    e.HTMLBody,
		Text:    e.TextBody,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var parsed resendResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Message != "" {
			return "", fmt.Errorf("resend: %s (status %d)", parsed.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}
	return parsed.ID, nil
}
