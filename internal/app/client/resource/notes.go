package resource

import (
	"context"

	"sticky/internal/cache"
	"sticky/internal/domain/note"
	"sticky/internal/model"
)

// Notes - кэшируемые эндпоинты заметок. Список содержит заметки всех
// пользователей, фильтрация по владельцу выполняется на экране.
type Notes struct {
	List *cache.Query[None, []note.Note]
	ByID *cache.Query[model.ID, note.Note]

	Create *cache.Mutation[note.Note, note.Note]
	Update *cache.Mutation[note.UpdateRequest, note.Note]
	Delete *cache.Mutation[model.ID, None]
}

func NewNotes(c *cache.Cache, b NotesBackend) *Notes {
	provides := []string{TagNotes}
	invalidates := cache.MutationOptions{Invalidates: []string{TagNotes}}

	return &Notes{
		List: cache.NewQuery(c, "getNotes",
			func(ctx context.Context, _ None) ([]note.Note, error) {
				return b.ListNotes(ctx)
			},
			cache.QueryOptions[None]{Key: noneKey, Provides: provides},
		),
		ByID: cache.NewQuery(c, "getNoteById",
			func(ctx context.Context, id model.ID) (note.Note, error) {
				return b.GetNote(ctx, id)
			},
			cache.QueryOptions[model.ID]{Key: model.ID.String, Provides: provides},
		),
		Create: cache.NewMutation(c, "createNote", b.CreateNote, invalidates),
		Update: cache.NewMutation(c, "updateNote", b.UpdateNote, invalidates),
		Delete: cache.NewMutation(c, "deleteNote",
			func(ctx context.Context, id model.ID) (None, error) {
				return None{}, b.DeleteNote(ctx, id)
			},
			invalidates,
		),
	}
}
