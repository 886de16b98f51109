package note

import (
	"github.com/google/uuid"

	"sticky/internal/model"
)

// IDGenerator выдает идентификатор для новой заметки
type IDGenerator func() model.ID

// NewID генерирует UUIDv7: метка времени плюс случайная часть.
// Уникальность на бэкенде не проверяется.
func NewID() model.ID {
	id, err := uuid.NewV7()
	if err != nil {
		return model.ID(uuid.NewString())
	}
	return model.ID(id.String())
}
