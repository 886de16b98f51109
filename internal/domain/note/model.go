package note

import (
	"errors"
	"fmt"
	"strings"

	"sticky/internal/model"
)

var (
	ErrNotFound   = errors.New("note not found")
	ErrEmptyField = errors.New("heading and description are required")

	ErrEmptyHeading     = fmt.Errorf("heading: %w", ErrEmptyField)
	ErrEmptyDescription = fmt.Errorf("description: %w", ErrEmptyField)
)

// Note - заметка, принадлежащая пользователю с указанным email.
// Принадлежность проверяется только на клиенте.
type Note struct {
	ID          model.ID `json:"id"`
	Email       string   `json:"email"`
	Heading     string   `json:"heading"`
	Description string   `json:"description"`
}

// UpdateRequest - полная замена заметки (PUT /notes/{id})
type UpdateRequest struct {
	ID          model.ID `json:"-"`
	Email       string   `json:"email"`
	Heading     string   `json:"heading"`
	Description string   `json:"description"`
}

// Validate проверяет, что заголовок и описание не пустые
func (n Note) Validate() error {
	if strings.TrimSpace(n.Heading) == "" {
		return ErrEmptyHeading
	}
	if strings.TrimSpace(n.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// OwnedBy оставляет только заметки владельца email, порядок сохраняется
func OwnedBy(notes []Note, email string) []Note {
	owned := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.Email == email {
			owned = append(owned, n)
		}
	}
	return owned
}

// Find ищет заметку по идентификатору
func Find(notes []Note, id model.ID) (Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}
