package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"messenger-client/internal/common/timestamp"
)

// User представляет учетную запись, как ее возвращает удаленный шлюз.
// Эта же структура целиком сохраняется в хранилище сессии.
type User struct {
	ID                 int64                `json:"id" validate:"required,gt=0"`
	Phone              string               `json:"phone" validate:"required"`
	Name               string               `json:"name,omitempty"`
	Bio                string               `json:"bio,omitempty"`
	Avatar             string               `json:"avatar,omitempty"`
	IsAdmin            bool                 `json:"is_admin"`
	IsBlocked          bool                 `json:"is_blocked"`
	IsProfileCompleted bool                 `json:"is_profile_completed"`
	CreatedAt          *timestamp.Timestamp `json:"created_at,omitempty"`
}

// DisplayName возвращает имя, а если его нет, телефон
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Phone
}

// Initial возвращает первую букву имени для аватара-заглушки
func (u *User) Initial() string {
	return Initial(u.Name)
}

// Initial returns the upper-cased first rune of name, or "?" when name is blank.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// Credentials используются для входа и регистрации
type Credentials struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileCompletion — данные первичного заполнения профиля
type ProfileCompletion struct {
	UserID       int64  `json:"user_id" validate:"required,gt=0"`
	Name         string `json:"name" validate:"required"`
	Bio          string `json:"bio"`
	PhoneContact string `json:"phone_contact"`
	Avatar       string `json:"avatar"`
}

// ProfileUpdate — изменение профиля из настроек
type ProfileUpdate struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// NewUser — создание пользователя администратором
type NewUser struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// BlockUpdate переключает признак блокировки
type BlockUpdate struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	IsBlocked bool  `json:"is_blocked"`
}
