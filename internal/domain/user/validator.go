package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail проверяет email на форму local@domain.tld без проверок по RFC
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword проверяет длину пароля после обрезки пробелов по краям
func ValidatePassword(password string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(password)) >= MinPasswordLen
}

// ValidateName проверяет, что имя не пустое после обрезки пробелов
func ValidateName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// ValidateCredentials - проверка формы входа: email и пароль
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || !ValidateEmail(email) {
		return fmt.Errorf("%w: enter a valid email address", ErrInvalidInput)
	}

	if !ValidatePassword(password) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLen)
	}

	return nil
}
