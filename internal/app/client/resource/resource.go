// Package resource описывает эндпоинты REST бэкенда поверх кэша запросов:
// пользователей и заметки.
package resource

import (
	"context"

	"sticky/internal/domain/note"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

// Теги инвалидации
const (
	TagNotes = "Notes"
	TagUsers = "Users"
)

// None - аргумент запросов без параметров
type None struct{}

func noneKey(None) string { return "" }

// UsersBackend - удаленные операции над пользователями
type UsersBackend interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	GetUser(ctx context.Context, id model.ID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateUser(ctx context.Context, req user.UpdateRequest) (user.User, error)
	DeleteUser(ctx context.Context, id model.ID) error
}

// NotesBackend - удаленные операции над заметками
type NotesBackend interface {
	ListNotes(ctx context.Context) ([]note.Note, error)
	GetNote(ctx context.Context, id model.ID) (note.Note, error)
	CreateNote(ctx context.Context, n note.Note) (note.Note, error)
	UpdateNote(ctx context.Context, req note.UpdateRequest) (note.Note, error)
	DeleteNote(ctx context.Context, id model.ID) error
}
