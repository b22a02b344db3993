package email

import "context"

// Sender is the interface that all email providers must implement.
// This abstraction allows swapping email providers (Gmail, SendGrid, SES, etc.)
// without changing business logic.
type Sender interface {
	// Send sends an email message.
	Send(ctx context.Context, msg Message) error
}

// Message represents an email message to be sent.
// To and CC carry comma-joined address lists, matching the wire format
// the legacy dispatcher used.
type Message struct {
	TenantID    string       // owning tenant, for audit logging
	From        string       // sender address
	To          string       // comma-joined recipient addresses
	CC          string       // comma-joined CC addresses, may be empty
	BCC         []string     // BCC addresses
	Subject     string       // email subject
	HTMLBody    string       // HTML email body
	TextBody    string       // plain-text fallback body
	Attachments []Attachment // file attachments, may be empty
}

// Attachment is a file attached to a message.
type Attachment struct {
	Filename string
	Content  []byte
}
