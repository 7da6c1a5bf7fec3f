package contact

import (
	"context"
	"regexp"
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Message is a contact-form submission from the storefront
type Message struct {
	shared.BaseEntity
	Sender  string
	Email   string
	Subject string
	Body    string
	IsRead  bool
}

// NewMessage creates an unread message
func NewMessage(sender, email, subject, body string) (*Message, error) {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return nil, shared.NewInvalidInputError("Sender is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, shared.NewInvalidInputError("Invalid email format")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewInvalidInputError("Message is required")
	}
	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		Sender:     sender,
		Email:      email,
		Subject:    strings.TrimSpace(subject),
		Body:       body,
	}, nil
}

// MarkRead flags the message as read
func (m *Message) MarkRead() {
	m.IsRead = true
	m.Touch()
}

// MessageRepository defines persistence operations for messages
type MessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	FindAll(ctx context.Context) ([]Message, error)
	Save(ctx context.Context, message *Message) error
	Delete(ctx context.Context, id uuid.UUID) error
}
