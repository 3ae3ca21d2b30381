package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.brevo.com"

// Client sends transactional email through the Brevo SMTP API.
type Client struct {
	apiKey      string
	senderEmail string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(apiKey, senderEmail string) *Client {
	return &Client{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, senderEmail, baseURL string) *Client {
	c := NewClient(apiKey, senderEmail)
	c.baseURL = baseURL
	return c
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendEmailRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

// SendVerificationCode emails the 6-digit code to the address. Callers treat
// a failure as a delivery problem only; it never fails the enclosing request.
func (c *Client) SendVerificationCode(ctx context.Context, email, code string) error {
	payload := &sendEmailRequest{
		Sender:  party{Name: "Journal", Email: c.senderEmail},
		To:      []party{{Email: email}},
		Subject: "Verify your Journal account",
		HTMLContent: fmt.Sprintf(
			"<html><body><h1>Journal</h1><h2>Verify your email</h2>"+
				"<p>Use the code below to verify your email address:</p>"+
				"<div style=\"font-size: 32px; font-weight: bold; letter-spacing: 8px;\">%s</div>"+
				"<p>This code expires in 15 minutes.</p>"+
				"<p>If you didn't create an account, you can safely ignore this email.</p>"+
				"</body></html>", code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo failed with status code %d: %s", resp.StatusCode, detail)
	}
	return nil
}
