package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BrevoClient sends transactional email through the Brevo SMTP API
// (POST /v3/smtp/email). The response body of any non-2xx answer is kept
// verbatim in the returned error for diagnostics.
type BrevoClient struct {
	baseURL    string
	apiKey     string
	sender     string
	senderName string
	httpClient *http.Client
}

func NewBrevoClient(baseURL, apiKey, sender, senderName string) *BrevoClient {
	return &BrevoClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		sender:     sender,
		senderName: senderName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type brevoParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64
}

type brevoRequest struct {
	Sender      brevoParty        `json:"sender"`
	To          []brevoParty      `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

type brevoResponse struct {
	MessageID string `json:"messageId"`
}

// Send posts the message to Brevo and returns the provider message id.
func (c *BrevoClient) Send(ctx context.Context, msg Message) (*Result, error) {
	payload := brevoRequest{
		Sender:      brevoParty{Email: c.sender, Name: c.senderName},
		To:          []brevoParty{{Email: msg.ToEmail}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	if len(msg.Attachment) > 0 {
		payload.Attachment = []brevoAttachment{{
			Name:    msg.AttachmentName,
			Content: base64.StdEncoding.EncodeToString(msg.Attachment),
		}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("brevo: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("brevo: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo: provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("brevo: provider returned %d: %s", resp.StatusCode, string(raw))
	}

	var out brevoResponse
	_ = json.Unmarshal(raw, &out) // missing messageId is not an error
	return &Result{MessageID: out.MessageID}, nil
}
