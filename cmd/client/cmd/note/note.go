package note

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
	"sticky/cmd/client/cmd/ui"
	"sticky/internal/app/client/screen"
)

// NoteCmd - родительская команда для всех операций с заметками
var NoteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"notes"},
	Short:   "Управление заметками",
	Long:    `Просмотр, создание, изменение и удаление заметок текущего пользователя.`,
}

// openNotes открывает экран заметок для вошедшего пользователя и загружает список
func openNotes(ctx context.Context, cmd *cobra.Command) (*screen.Notes, error) {
	app, err := types.AppFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := types.RequireSession(app); err != nil {
		return nil, err
	}

	notes := screen.NewNotes(ui.CommandDeps(cmd, app))
	if err := notes.Load(ctx); err != nil {
		notes.Close()
		return nil, err
	}

	if view := notes.View(); view.Err != nil {
		notes.Close()
		return nil, fmt.Errorf("ошибка загрузки заметок: %w", view.Err)
	}

	return notes, nil
}
