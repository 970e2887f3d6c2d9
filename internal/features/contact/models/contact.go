package models

import (
	"strings"

	"messenger-client/internal/common/timestamp"
	userModels "messenger-client/internal/features/user/models"
)

// NoMessagesPreview показывается, когда нет ни последнего сообщения, ни описания
const NoMessagesPreview = "No messages"

// Contact — запись адресной книги текущего пользователя с превью последнего сообщения
type Contact struct {
	ID              int64                `json:"id" validate:"required,gt=0"`
	Phone           string               `json:"phone"`
	Name            string               `json:"name,omitempty"`
	Bio             string               `json:"bio,omitempty"`
	Avatar          string               `json:"avatar,omitempty"`
	LastMessage     string               `json:"last_message,omitempty"`
	LastMessageTime *timestamp.Timestamp `json:"last_message_time,omitempty"`
}

// Preview возвращает текст второй строки в списке чатов
func (c *Contact) Preview() string {
	if c.LastMessage != "" {
		return c.LastMessage
	}
	if strings.TrimSpace(c.Bio) != "" {
		return c.Bio
	}
	return NoMessagesPreview
}

// LastSeen возвращает HH:MM последнего сообщения или пустую строку
func (c *Contact) LastSeen() string {
	if c.LastMessageTime == nil {
		return ""
	}
	return c.LastMessageTime.Clock()
}

func (c *Contact) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.Phone
}

func (c *Contact) Initial() string {
	return userModels.Initial(c.Name)
}

// Link — запрос на добавление контакта
type Link struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	ContactID int64 `json:"contact_id" validate:"required,gt=0"`
}

// LinkResult — ответ на добавление контакта
type LinkResult struct {
	Success bool `json:"success"`
}
