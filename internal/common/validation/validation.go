package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// Максимальные длины для различных полей
	MaxPhoneLength   = 20
	MaxNameLength    = 64
	MaxBioLength     = 500
	MaxMessageLength = 4000
	MaxPasswordLen   = 128
)

// Телефон: необязательный +, далее цифры, пробелы, скобки и дефисы
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{3,19}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator возвращает общий экземпляр go-playground/validator.
// Поля сопоставляются по json-тегам, чтобы сообщения совпадали с именами в протоколе.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct проверяет структуру, указатель на структуру или срез структур.
func Struct(v interface{}) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("nil payload")
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return Validator().Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := Struct(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	default:
		return nil
	}
}

// ValidatePhone проверяет номер телефона
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if len(phone) > MaxPhoneLength {
		return fmt.Errorf("phone cannot exceed %d characters", MaxPhoneLength)
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("phone must contain digits only, optionally prefixed with +")
	}
	return nil
}

// ValidatePassword проверяет пароль
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password cannot exceed %d characters", MaxPasswordLen)
	}
	return nil
}

// ValidateName проверяет отображаемое имя
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

// ValidateBio проверяет описание профиля (может быть пустым)
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio cannot exceed %d characters", MaxBioLength)
	}
	return nil
}

// ValidateMessage проверяет текст сообщения
func ValidateMessage(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return fmt.Errorf("message cannot exceed %d characters", MaxMessageLength)
	}
	return nil
}
