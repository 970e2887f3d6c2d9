package gatewaystub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"messenger-client/internal/common/errors"
	"messenger-client/internal/common/timestamp"
	chatModels "messenger-client/internal/features/chat/models"
	contactModels "messenger-client/internal/features/contact/models"
	userModels "messenger-client/internal/features/user/models"
)

// Тексты ошибок удаленного сервиса
const (
	MsgInvalidCredentials = "Invalid phone or password"
	MsgUserBlocked        = "User is blocked"
	MsgUserNotFound       = "User not found"
	MsgPhoneTaken         = "Phone is already registered"
)

type account struct {
	user     userModels.User
	password string
}

// Store — состояние шлюза в памяти. Все методы потокобезопасны и возвращают копии.
type Store struct {
	mu sync.RWMutex

	nextUserID    int64
	nextMessageID int64
	users         map[int64]*account
	byPhone       map[string]int64
	contacts      map[int64]map[int64]struct{}
	messages      []chatModels.Message

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*account),
		byPhone:  make(map[string]int64),
		contacts: make(map[int64]map[int64]struct{}),
		now:      time.Now,
	}
}

// SetClock подменяет источник времени (тесты)
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// SeedAdmin создает администратора с заполненным профилем, если телефона еще нет
func (s *Store) SeedAdmin(phone, password, name string) (userModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byPhone[phone]; ok {
		return s.users[id].user, nil
	}
	acc, err := s.insertLocked(phone, password, name, true)
	if err != nil {
		return userModels.User{}, err
	}
	acc.user.IsAdmin = true
	return acc.user, nil
}

func (s *Store) Login(phone, password string) (userModels.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPhone[strings.TrimSpace(phone)]
	if !ok || s.users[id].password != password {
		return userModels.User{}, errors.New(errors.ErrCodeUnauthorized, MsgInvalidCredentials)
	}
	acc := s.users[id]
	if acc.user.IsBlocked {
		return userModels.User{}, errors.New(errors.ErrCodeForbidden, MsgUserBlocked)
	}
	return acc.user, nil
}

// Register создает учетную запись без профиля
func (s *Store) Register(phone, password string) (userModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.insertLocked(phone, password, "", false)
	if err != nil {
		return userModels.User{}, err
	}
	return acc.user, nil
}

func (s *Store) CompleteProfile(userID int64, name, bio, avatar string) (userModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[userID]
	if !ok {
		return userModels.User{}, errors.NewNotFoundError("user", userID)
	}
	acc.user.Name = name
	acc.user.Bio = bio
	acc.user.Avatar = avatar
	acc.user.IsProfileCompleted = true
	return acc.user, nil
}

func (s *Store) UpdateProfile(userID int64, name, bio, avatar string) (userModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[userID]
	if !ok {
		return userModels.User{}, errors.NewNotFoundError("user", userID)
	}
	acc.user.Name = name
	acc.user.Bio = bio
	acc.user.Avatar = avatar
	return acc.user, nil
}

// Search находит только пользователей с заполненным профилем
func (s *Store) Search(phone string) (userModels.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPhone[strings.TrimSpace(phone)]
	if !ok || !s.users[id].user.IsProfileCompleted {
		return userModels.User{}, errors.New(errors.ErrCodeNotFound, MsgUserNotFound)
	}
	return s.users[id].user, nil
}

// AllUsers возвращает всех пользователей, новые первыми
func (s *Store) AllUsers() []userModels.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]userModels.User, 0, len(s.users))
	for _, acc := range s.users {
		out = append(out, acc.user)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt.Time, out[j].CreatedAt.Time
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// CreateUser — создание администратором, профиль сразу считается заполненным
func (s *Store) CreateUser(phone, password, name string) (userModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.insertLocked(phone, password, name, true)
	if err != nil {
		return userModels.User{}, err
	}
	return acc.user, nil
}

func (s *Store) SetBlocked(userID int64, blocked bool) (userModels.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[userID]
	if !ok {
		return userModels.User{}, errors.NewNotFoundError("user", userID)
	}
	acc.user.IsBlocked = blocked
	return acc.user, nil
}

// Contacts возвращает контакты с последним сообщением; без переписки — в конце
func (s *Store) Contacts(userID int64) []contactModels.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contactModels.Contact, 0, len(s.contacts[userID]))
	for contactID := range s.contacts[userID] {
		acc, ok := s.users[contactID]
		if !ok {
			continue
		}
		c := contactModels.Contact{
			ID:     acc.user.ID,
			Phone:  acc.user.Phone,
			Name:   acc.user.Name,
			Bio:    acc.user.Bio,
			Avatar: acc.user.Avatar,
		}
		conv := chatModels.Conversation{UserID: userID, ContactID: contactID}
		for i := len(s.messages) - 1; i >= 0; i-- {
			if conv.Includes(s.messages[i]) {
				ts := s.messages[i].CreatedAt
				c.LastMessage = s.messages[i].Content
				c.LastMessageTime = &ts
				break
			}
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessageTime, out[j].LastMessageTime
		switch {
		case a != nil && b != nil && !a.Equal(b.Time):
			return a.After(b.Time)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}

// AddContact идемпотентен, как ON CONFLICT DO NOTHING
func (s *Store) AddContact(userID, contactID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return errors.NewNotFoundError("user", userID)
	}
	if _, ok := s.users[contactID]; !ok {
		return errors.NewNotFoundError("contact", contactID)
	}
	set, ok := s.contacts[userID]
	if !ok {
		set = make(map[int64]struct{})
		s.contacts[userID] = set
	}
	set[contactID] = struct{}{}
	return nil
}

// Messages возвращает переписку по возрастанию времени создания
func (s *Store) Messages(userID, contactID int64) []chatModels.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv := chatModels.Conversation{UserID: userID, ContactID: contactID}
	out := make([]chatModels.Message, 0)
	for _, m := range s.messages {
		if !conv.Includes(m) {
			continue
		}
		if sender, ok := s.users[m.SenderID]; ok {
			m.SenderName = sender.user.Name
			m.SenderAvatar = sender.user.Avatar
		}
		out = append(out, m)
	}
	return out
}

func (s *Store) SendMessage(senderID, receiverID int64, content string) (chatModels.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.users[senderID]
	if !ok {
		return chatModels.Message{}, errors.NewNotFoundError("sender", senderID)
	}
	if sender.user.IsBlocked {
		return chatModels.Message{}, errors.New(errors.ErrCodeForbidden, MsgUserBlocked)
	}
	if _, ok := s.users[receiverID]; !ok {
		return chatModels.Message{}, errors.NewNotFoundError("receiver", receiverID)
	}

	s.nextMessageID++
	m := chatModels.Message{
		ID:         s.nextMessageID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  timestamp.New(s.now().UTC()),
	}
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *Store) insertLocked(phone, password, name string, completed bool) (*account, error) {
	phone = strings.TrimSpace(phone)
	if _, taken := s.byPhone[phone]; taken {
		return nil, errors.New(errors.ErrCodeConflict, MsgPhoneTaken)
	}

	s.nextUserID++
	created := timestamp.New(s.now().UTC())
	acc := &account{
		user: userModels.User{
			ID:                 s.nextUserID,
			Phone:              phone,
			Name:               name,
			IsProfileCompleted: completed,
			CreatedAt:          &created,
		},
		password: password,
	}
	s.users[acc.user.ID] = acc
	s.byPhone[phone] = acc.user.ID
	return acc, nil
}
