package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendClient sends email through the Resend API. An empty API key
// makes Send fail explicitly; the contact flow must never silently
// drop the email.
type ResendClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewResendClient(apiKey, baseURL string) *ResendClient {
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type sendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *ResendClient) Send(ctx context.Context, e Email) error {
	if c.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not configured")
	}

	b, err := json.Marshal(sendReq{
		From:    e.From,
		To:      []string{e.To},
		Subject: e.Subject,
		HTML:    e.HTML,
	})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend error (status %d): %s", resp.StatusCode, body)
	}
	return nil
}
