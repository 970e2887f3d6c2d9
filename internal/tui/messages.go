package tui

import (
	chatModels "messenger-client/internal/features/chat/models"
	contactModels "messenger-client/internal/features/contact/models"
	userModels "messenger-client/internal/features/user/models"
	"messenger-client/internal/workers"
)

// Снимки от синхронизаторов
type (
	contactsUpdatedMsg struct {
		update workers.Update[int64, contactModels.Contact]
	}
	messagesUpdatedMsg struct {
		update workers.Update[chatModels.Conversation, chatModels.Message]
	}
	usersUpdatedMsg struct {
		update workers.Update[int64, userModels.User]
	}
)

// Результаты одиночных запросов
type (
	authResultMsg struct {
		user     *userModels.User
		err      error
		register bool
	}
	profileResultMsg struct {
		user *userModels.User
		err  error
	}
	settingsResultMsg struct {
		user *userModels.User
		err  error
	}
	searchResultMsg struct {
		phone string
		user  *userModels.User
		err   error
	}
	addContactResultMsg struct {
		contactID int64
		err       error
	}
	sendResultMsg struct {
		conv chatModels.Conversation
		err  error
	}
	adminCreateResultMsg struct {
		err error
	}
	adminToggleResultMsg struct {
		userID int64
		err    error
	}
)
