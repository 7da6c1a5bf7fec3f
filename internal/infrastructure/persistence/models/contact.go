package models

import "github.com/freshmart/backend/internal/domain/contact"

// MessageModel is the persistence model for contact.Message.
type MessageModel struct {
	BaseModel
	Sender  string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(255);not null"`
	Subject string `gorm:"type:varchar(255)"`
	Body    string `gorm:"column:message;type:text;not null"`
	IsRead  bool   `gorm:"not null;default:false"`
}

func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) ToDomain() *contact.Message {
	return &contact.Message{
		BaseEntity: m.toEntity(),
		Sender:     m.Sender,
		Email:      m.Email,
		Subject:    m.Subject,
		Body:       m.Body,
		IsRead:     m.IsRead,
	}
}

func (m *MessageModel) FromDomain(msg *contact.Message) {
	m.fromEntity(msg.BaseEntity)
	m.Sender = msg.Sender
	m.Email = msg.Email
	m.Subject = msg.Subject
	m.Body = msg.Body
	m.IsRead = msg.IsRead
}
