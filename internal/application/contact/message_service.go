package contact

import (
	"context"
	"time"

	"github.com/freshmart/backend/internal/domain/contact"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendMessageRequest represents a contact form submission
type SendMessageRequest struct {
	Sender  string `json:"sender" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=300"`
	Message string `json:"message" binding:"required,max=5000"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToMessageResponse converts a domain Message to MessageResponse
func ToMessageResponse(m *contact.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// MessageService handles contact messages
type MessageService struct {
	messageRepo contact.MessageRepository
	logger      *zap.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo contact.MessageRepository, logger *zap.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, logger: logger}
}

// Send stores a new unread message
func (s *MessageService) Send(ctx context.Context, req SendMessageRequest) (*MessageResponse, error) {
	message, err := contact.NewMessage(req.Sender, req.Email, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Save(ctx, message); err != nil {
		return nil, err
	}
	s.logger.Info("Contact message received",
		zap.String("message_id", message.ID.String()),
		zap.String("email", message.Email))
	resp := ToMessageResponse(message)
	return &resp, nil
}

// List returns all messages, newest first
func (s *MessageService) List(ctx context.Context) ([]MessageResponse, error) {
	messages, err := s.messageRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses, nil
}

// GetByID retrieves a message by ID
func (s *MessageService) GetByID(ctx context.Context, id uuid.UUID) (*MessageResponse, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMessageResponse(message)
	return &resp, nil
}

// MarkRead flags a message as read
func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) (*MessageResponse, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !message.IsRead {
		message.MarkRead()
		if err := s.messageRepo.Save(ctx, message); err != nil {
			return nil, err
		}
	}
	resp := ToMessageResponse(message)
	return &resp, nil
}

// Delete removes a message
func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.messageRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.messageRepo.Delete(ctx, id)
}
