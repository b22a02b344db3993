package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailConfig holds the configuration for the Gmail email sender.
type GmailConfig struct {
	// CredentialsJSON is the OAuth2 service account or app credentials JSON.
	CredentialsJSON string
	// SenderAddress is the mailbox mail is sent through.
	SenderAddress string
	// SenderName is the display name for the sender.
	SenderName string
}

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service       *gmail.Service
	senderAddress string
	senderName    string
}

// NewGmailSender creates a new GmailSender.
// It expects a service account credentials JSON with domain-wide delegation,
// or an OAuth2 credentials JSON with a refresh token for the sender mailbox.
func NewGmailSender(ctx context.Context, cfg GmailConfig) (*GmailSender, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("gmail: credentials JSON is required")
	}
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	creds := []byte(cfg.CredentialsJSON)

	jwtConfig, err := google.JWTConfigFromJSON(creds, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to parse credentials: %w", err)
	}

	// For service account with domain-wide delegation, impersonate the sender
	jwtConfig.Subject = cfg.SenderAddress

	client := jwtConfig.Client(ctx)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		senderAddress: cfg.SenderAddress,
		senderName:    cfg.SenderName,
	}, nil
}

// NewGmailSenderWithToken creates a GmailSender using OAuth2 client credentials + refresh token.
// This is useful for mailboxes without domain-wide delegation.
func NewGmailSenderWithToken(ctx context.Context, clientID, clientSecret, refreshToken, senderAddress, senderName string) (*GmailSender, error) {
	if senderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
	}

	client := oauthCfg.Client(ctx, token)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	from := msg.From
	if from == "" {
		from = g.senderAddress
	}
	if g.senderName != "" && from == g.senderAddress {
		from = fmt.Sprintf("%s <%s>", g.senderName, g.senderAddress)
	}

	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildMIME(from, msg))),
	}

	_, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail: failed to send email: %w", err)
	}

	return nil
}

// buildMIME assembles the raw RFC 2822 message. Messages with attachments
// become multipart/mixed wrapping the body; HTML+text bodies become
// multipart/alternative.
func buildMIME(from string, msg Message) string {
	headers := []string{
		"From: " + from,
		"To: " + msg.To,
	}
	if msg.CC != "" {
		headers = append(headers, "Cc: "+msg.CC)
	}
	if len(msg.BCC) > 0 {
		headers = append(headers, "Bcc: "+strings.Join(msg.BCC, ","))
	}
	headers = append(headers,
		"Subject: "+msg.Subject,
		"MIME-Version: 1.0",
	)

	body := buildBodyPart(msg)

	if len(msg.Attachments) == 0 {
		return strings.Join(append(headers, body...), "\r\n")
	}

	boundary := "boundary_emailer_mixed"
	lines := append(headers,
		"Content-Type: multipart/mixed; boundary="+boundary,
		"",
		"--"+boundary,
	)
	lines = append(lines, body...)

	for _, att := range msg.Attachments {
		encoded := base64.StdEncoding.EncodeToString(att.Content)
		lines = append(lines,
			"",
			"--"+boundary,
			"Content-Type: application/octet-stream; name=\""+att.Filename+"\"",
			"Content-Disposition: attachment; filename=\""+att.Filename+"\"",
			"Content-Transfer-Encoding: base64",
			"",
		)
		// Wrap base64 content at 76 characters per RFC 2045
		for len(encoded) > 76 {
			lines = append(lines, encoded[:76])
			encoded = encoded[76:]
		}
		lines = append(lines, encoded)
	}

	lines = append(lines, "", "--"+boundary+"--")
	return strings.Join(lines, "\r\n")
}

// buildBodyPart returns the body headers + content without the outer
// message headers.
func buildBodyPart(msg Message) []string {
	if msg.HTMLBody != "" && msg.TextBody != "" {
		boundary := "boundary_emailer_alt"
		return []string{
			"Content-Type: multipart/alternative; boundary=" + boundary,
			"",
			"--" + boundary,
			"Content-Type: text/plain; charset=UTF-8",
			"Content-Transfer-Encoding: 7bit",
			"",
			msg.TextBody,
			"",
			"--" + boundary,
			"Content-Type: text/html; charset=UTF-8",
			"Content-Transfer-Encoding: 7bit",
			"",
			msg.HTMLBody,
			"",
			"--" + boundary + "--",
		}
	}

	if msg.HTMLBody != "" {
		return []string{
			"Content-Type: text/html; charset=UTF-8",
			"",
			msg.HTMLBody,
		}
	}

	return []string{
		"Content-Type: text/plain; charset=UTF-8",
		"",
		msg.TextBody,
	}
}
