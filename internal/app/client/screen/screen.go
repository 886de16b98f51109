// Package screen содержит контроллеры экранов Login, Signup и Notes.
// Экран хранит состояние формы, читает сессию и кэш, а навигацию
// и уведомления отдает внешним исполнителям.
package screen

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"sticky/internal/app/client/resource"
	"sticky/internal/domain/note"
)

// Маршруты приложения
const (
	RouteLogin  = "/"
	RouteSignup = "/signup"
	RouteNotes  = "/notes"
)

// Тексты уведомлений
const (
	MsgLoginSuccess     = "Login successful!"
	MsgSignupSuccess    = "SignUp Successful!"
	MsgCheckCredentials = "Please check your credentials."
	MsgUserNotFound     = "User with this email not found"
)

// Поля форм
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldHeading     = "heading"
	FieldDescription = "description"
)

// Подсказки к полям с ошибкой
const (
	HintFirstName = "First Name is required"
	HintLastName  = "Last Name is required"
	HintEmail     = "Enter a valid email address"
	HintPassword  = "Password must be at least 6 characters"
)

// ErrValidation - локальная ошибка формы, запрос не отправляется
var ErrValidation = errors.New("validation failed")

// FieldError указывает поле формы, не прошедшее проверку.
// Err - причина из доменного пакета, если она есть.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Field)
}

func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// Navigator переключает экран приложения
type Navigator interface {
	Navigate(route string)
}

// Notifier показывает разовое уведомление
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Session - email вошедшего пользователя
type Session interface {
	Email() (string, bool)
	SetEmail(email string)
}

// Deps - общие зависимости экранов
type Deps struct {
	Users     *resource.Users
	Notes     *resource.Notes
	Session   Session
	Navigator Navigator
	Notifier  Notifier
	Log       *slog.Logger
	// NewID выдает ID новой заметки. По умолчанию note.NewID.
	NewID note.IDGenerator
}

func (d Deps) logger(name string) *slog.Logger {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return log.With(slog.String("screen", name))
}

// userMessage - ошибка, текст которой можно показать пользователю как есть
type userMessage interface {
	UserMessage() string
}

// failureText формирует текст уведомления об ошибке запроса
func failureText(err error) string {
	var um userMessage
	if errors.As(err, &um) {
		return "Error: " + um.UserMessage()
	}
	return "Error: " + err.Error()
}
