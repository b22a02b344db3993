package email

import "context"

// MemorySender collects sent messages in memory. Test double.
type MemorySender struct {
	Messages []Message
}

// NewMemorySender creates a new MemorySender.
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

// Send records the message.
func (s *MemorySender) Send(_ context.Context, msg Message) error {
	s.Messages = append(s.Messages, msg)
	return nil
}
