// Package mailer holds the client for the external email dispatcher
// (the send-contest-emails function). The dispatcher is a black box:
// it renders and sends the actual emails.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cristianccgg/letranido-backend/config"
)

// Dispatcher triggers contest notification emails.
type Dispatcher interface {
	// SendContestEmail asks the dispatcher to send one email type for one
	// contest. A non-2xx response is an error carrying the body verbatim.
	SendContestEmail(ctx context.Context, emailType, contestID string) error
}

// HTTPDispatcher calls the dispatcher function over HTTP with a bearer
// credential.
type HTTPDispatcher struct {
	url    string
	token  string
	client *http.Client
}

// sendRequest is the dispatcher wire payload.
type sendRequest struct {
	EmailType string `json:"emailType"`
	ContestID string `json:"contestId"`
}

// NewHTTPDispatcher builds the dispatcher client from configuration.
func NewHTTPDispatcher(cfg *config.DispatcherConfig) *HTTPDispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPDispatcher{
		url:    cfg.URL,
		token:  cfg.Token,
		client: &http.Client{Timeout: timeout},
	}
}

func (d *HTTPDispatcher) SendContestEmail(ctx context.Context, emailType, contestID string) error {
	body, err := json.Marshal(sendRequest{EmailType: emailType, ContestID: contestID})
	if err != nil {
		return fmt.Errorf("encoding dispatcher request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building dispatcher request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling dispatcher: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Capture the body verbatim into the per-contest error.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("dispatcher returned %d: %s", resp.StatusCode, string(msg))
	}

	return nil
}
