// Package mailer composes and dispatches transactional emails carrying the
// rendered facture PDF.
package mailer

import "context"

// Message is one outbound transactional email with a single recipient and a
// single PDF attachment.
type Message struct {
	ToEmail        string
	Subject        string
	HTML           string
	AttachmentName string
	Attachment     []byte // raw PDF bytes; adapters encode as needed
}

// Result reports provider-side identifiers kept for audit.
type Result struct {
	MessageID string
}

// Provider dispatches a message through a transactional email backend.
// A non-nil error is a hard failure for the enclosing job.
type Provider interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}
