package models

import (
	"fmt"

	"messenger-client/internal/common/timestamp"
)

// Message — сообщение переписки в порядке создания
type Message struct {
	ID           int64               `json:"id" validate:"required,gt=0"`
	SenderID     int64               `json:"sender_id" validate:"required,gt=0"`
	ReceiverID   int64               `json:"receiver_id" validate:"required,gt=0"`
	Content      string              `json:"content"`
	IsRead       bool                `json:"is_read"`
	CreatedAt    timestamp.Timestamp `json:"created_at"`
	SenderName   string              `json:"sender_name,omitempty"`
	SenderAvatar string              `json:"sender_avatar,omitempty"`
}

// IsOwn сообщает, отправлено ли сообщение пользователем userID
func (m *Message) IsOwn(userID int64) bool {
	return m.SenderID == userID
}

// Conversation identifies a thread by the unordered pair of participants.
type Conversation struct {
	UserID    int64
	ContactID int64
}

// Key returns the canonical (low, high) form so both sides share one key.
func (c Conversation) Key() Conversation {
	if c.UserID > c.ContactID {
		return Conversation{UserID: c.ContactID, ContactID: c.UserID}
	}
	return c
}

// Includes reports whether the message belongs to the conversation.
func (c Conversation) Includes(m Message) bool {
	return (m.SenderID == c.UserID && m.ReceiverID == c.ContactID) ||
		(m.SenderID == c.ContactID && m.ReceiverID == c.UserID)
}

func (c Conversation) String() string {
	k := c.Key()
	return fmt.Sprintf("%d:%d", k.UserID, k.ContactID)
}

// Outgoing — запрос на отправку сообщения
type Outgoing struct {
	SenderID   int64  `json:"sender_id" validate:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required"`
}
