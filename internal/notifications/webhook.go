package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// webhookSender posts appointment events to an external endpoint
type webhookSender struct {
	url        string
	token      string
	httpClient *http.Client
}

func newWebhookSender(url, token string, timeout time.Duration) *webhookSender {
	return &webhookSender{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// configured reports whether the channel can send at all
func (s *webhookSender) configured() bool {
	return s.url != ""
}

// webhookPayload is the outbound event envelope
type webhookPayload struct {
	Event       string      `json:"event"`
	Appointment interface{} `json:"appointment"`
	SentAt      time.Time   `json:"sent_at"`
}

// Send posts one event. Any non-2xx response is a failure.
func (s *webhookSender) Send(ctx context.Context, event string, appointment interface{}) error {
	payload, err := json.Marshal(webhookPayload{
		Event:       event,
		Appointment: appointment,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrWebhookSend, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrWebhookSend, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrWebhookSend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrWebhookSend, resp.StatusCode, string(body))
	}

	return nil
}
