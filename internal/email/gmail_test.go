package email

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIME_HTMLOnly(t *testing.T) {
	mime := buildMIME("noreply@x.com", Message{
		To:       "buyer@y.com",
		Subject:  "Order confirmation - #SO-100 for Acme",
		HTMLBody: "<html>body</html>",
	})

	assert.Contains(t, mime, "From: noreply@x.com\r\n")
	assert.Contains(t, mime, "To: buyer@y.com\r\n")
	assert.Contains(t, mime, "Subject: Order confirmation - #SO-100 for Acme\r\n")
	assert.Contains(t, mime, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, mime, "<html>body</html>")
	assert.NotContains(t, mime, "Cc:")
	assert.NotContains(t, mime, "multipart/mixed")
}

func TestBuildMIME_WithCCAndBCC(t *testing.T) {
	mime := buildMIME("noreply@x.com", Message{
		To:       "buyer@y.com,cs@x.com",
		CC:       "a@x.com,b@x.com",
		BCC:      []string{"audit@x.com"},
		Subject:  "subject",
		HTMLBody: "<p>hi</p>",
	})

	assert.Contains(t, mime, "To: buyer@y.com,cs@x.com\r\n")
	assert.Contains(t, mime, "Cc: a@x.com,b@x.com\r\n")
	assert.Contains(t, mime, "Bcc: audit@x.com\r\n")
}

func TestBuildMIME_WithAttachment(t *testing.T) {
	content := []byte("%PDF-1.4 some pdf bytes that are long enough to wrap across multiple base64 lines in the encoded output")
	mime := buildMIME("noreply@x.com", Message{
		To:       "buyer@y.com",
		Subject:  "subject",
		HTMLBody: "<p>hi</p>",
		Attachments: []Attachment{
			{Filename: "OrderForm.pdf", Content: content},
		},
	})

	assert.Contains(t, mime, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, mime, `Content-Disposition: attachment; filename="OrderForm.pdf"`)
	assert.Contains(t, mime, "Content-Transfer-Encoding: base64")

	// The attachment decodes back to the original bytes
	start := strings.Index(mime, "Content-Transfer-Encoding: base64\r\n\r\n")
	require.GreaterOrEqual(t, start, 0)
	encoded := mime[start+len("Content-Transfer-Encoding: base64\r\n\r\n"):]
	if end := strings.Index(encoded, "\r\n--"); end >= 0 {
		encoded = encoded[:end]
	}
	encoded = strings.ReplaceAll(encoded, "\r\n", "")

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestBuildMIME_AlternativeBodies(t *testing.T) {
	mime := buildMIME("noreply@x.com", Message{
		To:       "buyer@y.com",
		Subject:  "subject",
		HTMLBody: "<p>hi</p>",
		TextBody: "hi",
	})

	assert.Contains(t, mime, "multipart/alternative")
	assert.Contains(t, mime, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, mime, "Content-Type: text/html; charset=UTF-8")
}

func TestMemorySender_Records(t *testing.T) {
	s := NewMemorySender()
	msg := Message{To: "a@x.com", Subject: "s"}
	require.NoError(t, s.Send(context.Background(), msg))
	require.Len(t, s.Messages, 1)
	assert.Equal(t, msg, s.Messages[0])
}
