package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"sticky/internal/app/client/resource"
	"sticky/internal/cache"
	"sticky/internal/domain/note"
	"sticky/internal/model"
)

// ErrDialogClosed - подтверждение обновления без открытого диалога
var ErrDialogClosed = errors.New("update dialog is not open")

// UpdateDialog - диалог редактирования заметки
type UpdateDialog struct {
	Open        bool
	ID          model.ID
	Heading     string
	Description string
}

// NotesView - состояние экрана заметок
type NotesView struct {
	Email       string
	Loading     bool
	Err         error
	Notes       []note.Note
	Heading     string
	Description string
	Dialog      UpdateDialog
}

// Notes - экран заметок текущего пользователя
type Notes struct {
	res      *resource.Notes
	session  Session
	nav      Navigator
	notifier Notifier
	newID    note.IDGenerator
	log      *slog.Logger

	mu          sync.Mutex
	entry       cache.Entry[[]note.Note]
	heading     string
	description string
	dialog      UpdateDialog
	onChange    func(NotesView)
	unsubscribe func()
	closed      bool
}

// NewNotes создает экран и подписывает его на список заметок
func NewNotes(d Deps) *Notes {
	newID := d.NewID
	if newID == nil {
		newID = note.NewID
	}

	n := &Notes{
		res:      d.Notes,
		session:  d.Session,
		nav:      d.Navigator,
		notifier: d.Notifier,
		newID:    newID,
		log:      d.logger("notes"),
	}

	n.entry = d.Notes.List.Peek(resource.None{})
	n.unsubscribe = d.Notes.List.Subscribe(resource.None{}, n.apply)

	return n
}

// apply принимает переход записи кэша. После Close переходы игнорируются.
func (n *Notes) apply(e cache.Entry[[]note.Note]) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.entry = e
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(n.View())
	}
}

// OnChange задает функцию перерисовки при изменении списка
func (n *Notes) OnChange(fn func(NotesView)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = fn
}

// Load загружает список заметок (или берет его из кэша)
func (n *Notes) Load(ctx context.Context) error {
	entry := n.res.List.Query(ctx, resource.None{})
	if entry.IsLoading() {
		return entry.Err
	}
	if entry.IsError() {
		return fmt.Errorf("ошибка загрузки заметок: %w", entry.Err)
	}
	return nil
}

// Refresh принудительно перезагружает список
func (n *Notes) Refresh(ctx context.Context) error {
	entry := n.res.List.Refetch(ctx, resource.None{})
	if entry.IsLoading() {
		return entry.Err
	}
	if entry.IsError() {
		return fmt.Errorf("ошибка загрузки заметок: %w", entry.Err)
	}
	return nil
}

func (n *Notes) View() NotesView {
	email, ok := n.session.Email()

	n.mu.Lock()
	defer n.mu.Unlock()

	v := NotesView{
		Email:       email,
		Loading:     n.entry.IsIdle() || n.entry.IsLoading(),
		Heading:     n.heading,
		Description: n.description,
		Dialog:      n.dialog,
		Notes:       []note.Note{},
	}
	if n.entry.IsError() {
		v.Err = n.entry.Err
	}
	if ok && !n.entry.FetchedAt.IsZero() {
		v.Notes = note.OwnedBy(n.entry.Data, email)
	}

	return v
}

// visible - заметки владельца сессии из текущей записи кэша
func (n *Notes) visible() []note.Note {
	return n.View().Notes
}

func (n *Notes) SetHeading(v string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.heading = v
}

func (n *Notes) SetDescription(v string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.description = v
}

// Create создает заметку из полей формы. Пустые поля не отправляются.
func (n *Notes) Create(ctx context.Context) (note.Note, error) {
	email, _ := n.session.Email()

	n.mu.Lock()
	draft := note.Note{
		Email:       email,
		Heading:     n.heading,
		Description: n.description,
	}
	n.mu.Unlock()

	if err := draft.Validate(); err != nil {
		field := FieldHeading
		if errors.Is(err, note.ErrEmptyDescription) {
			field = FieldDescription
		}
		return note.Note{}, &FieldError{Field: field, Err: err}
	}

	draft.ID = n.newID()
	created, err := n.res.Create.Mutate(ctx, draft)
	if err != nil {
		n.notifier.Failure(failureText(err))
		return note.Note{}, fmt.Errorf("ошибка создания заметки: %w", err)
	}

	n.mu.Lock()
	n.heading = ""
	n.description = ""
	n.mu.Unlock()

	n.log.Debug("Заметка создана", slog.String("id", draft.ID.String()))

	if created.ID.IsZero() {
		created = draft
	}
	return created, nil
}

// OpenUpdate открывает диалог с текущими значениями заметки.
// Ищутся только заметки, видимые в сессии.
func (n *Notes) OpenUpdate(id model.ID) error {
	selected, ok := note.Find(n.visible(), id)
	if !ok {
		return note.ErrNotFound
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.dialog = UpdateDialog{
		Open:        true,
		ID:          selected.ID,
		Heading:     selected.Heading,
		Description: selected.Description,
	}
	return nil
}

func (n *Notes) SetUpdateHeading(v string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dialog.Heading = v
}

func (n *Notes) SetUpdateDescription(v string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dialog.Description = v
}

// CloseUpdate закрывает диалог без сохранения
func (n *Notes) CloseUpdate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dialog = UpdateDialog{}
}

// ConfirmUpdate заменяет заголовок, описание и email заметки.
// При ошибке диалог остается открытым.
func (n *Notes) ConfirmUpdate(ctx context.Context) (note.Note, error) {
	email, _ := n.session.Email()

	n.mu.Lock()
	dialog := n.dialog
	n.mu.Unlock()

	if !dialog.Open {
		return note.Note{}, ErrDialogClosed
	}

	updated, err := n.res.Update.Mutate(ctx, note.UpdateRequest{
		ID:          dialog.ID,
		Email:       email,
		Heading:     dialog.Heading,
		Description: dialog.Description,
	})
	if err != nil {
		n.notifier.Failure(failureText(err))
		return note.Note{}, fmt.Errorf("ошибка обновления заметки: %w", err)
	}

	n.CloseUpdate()

	return updated, nil
}

// Delete удаляет заметку по ID
func (n *Notes) Delete(ctx context.Context, id model.ID) error {
	if _, err := n.res.Delete.Mutate(ctx, id); err != nil {
		n.notifier.Failure(failureText(err))
		return fmt.Errorf("ошибка удаления заметки: %w", err)
	}

	n.log.Debug("Заметка удалена", slog.String("id", id.String()))
	return nil
}

// Logout возвращает на экран входа. Сессия и кэш не сбрасываются.
func (n *Notes) Logout() {
	n.nav.Navigate(RouteLogin)
}

// Close отписывает экран от кэша
func (n *Notes) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	unsubscribe := n.unsubscribe
	n.mu.Unlock()

	unsubscribe()
}
