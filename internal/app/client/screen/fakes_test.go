package screen

import (
	"context"
	"io"
	"strconv"
	"sync"
	"testing"

	"golang.org/x/exp/slog"

	"sticky/internal/app/client/resource"
	"sticky/internal/app/client/session"
	"sticky/internal/cache"
	"sticky/internal/domain/note"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

type fakeNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (f *fakeNavigator) Navigate(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, route)
}

func (f *fakeNavigator) Routes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.routes...)
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (f *fakeNotifier) Success(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, msg)
}

func (f *fakeNotifier) Failure(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, msg)
}

func (f *fakeNotifier) Successes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.successes...)
}

func (f *fakeNotifier) Failures() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.failures...)
}

// memBackend - бэкенд пользователей и заметок в памяти
type memBackend struct {
	mu sync.Mutex

	users  []user.User
	notes  []note.Note
	nextID int

	usersErr error
	writeErr error

	listUsersCalls int
	listNotesCalls int
	writeCalls     int
}

func (b *memBackend) ListUsers(context.Context) ([]user.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listUsersCalls++
	if b.usersErr != nil {
		return nil, b.usersErr
	}
	return append([]user.User{}, b.users...), nil
}

func (b *memBackend) GetUser(_ context.Context, id model.ID) (user.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (b *memBackend) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u, ok := user.FindByEmail(b.users, email); ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (b *memBackend) CreateUser(_ context.Context, u user.User) (user.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeCalls++
	if b.writeErr != nil {
		return user.User{}, b.writeErr
	}
	b.nextID++
	u.ID = model.ID(strconv.Itoa(b.nextID))
	b.users = append(b.users, u)
	return u, nil
}

func (b *memBackend) UpdateUser(context.Context, user.UpdateRequest) (user.User, error) {
	return user.User{}, nil
}

func (b *memBackend) DeleteUser(context.Context, model.ID) error {
	return nil
}

func (b *memBackend) ListNotes(context.Context) ([]note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listNotesCalls++
	return append([]note.Note{}, b.notes...), nil
}

func (b *memBackend) GetNote(_ context.Context, id model.ID) (note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n, ok := note.Find(b.notes, id); ok {
		return n, nil
	}
	return note.Note{}, note.ErrNotFound
}

func (b *memBackend) CreateNote(_ context.Context, n note.Note) (note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeCalls++
	if b.writeErr != nil {
		return note.Note{}, b.writeErr
	}
	b.notes = append(b.notes, n)
	return n, nil
}

func (b *memBackend) UpdateNote(_ context.Context, req note.UpdateRequest) (note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeCalls++
	if b.writeErr != nil {
		return note.Note{}, b.writeErr
	}
	for i := range b.notes {
		if b.notes[i].ID == req.ID {
			b.notes[i] = note.Note{ID: req.ID, Email: req.Email, Heading: req.Heading, Description: req.Description}
			return b.notes[i], nil
		}
	}
	return note.Note{}, note.ErrNotFound
}

func (b *memBackend) DeleteNote(_ context.Context, id model.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeCalls++
	if b.writeErr != nil {
		return b.writeErr
	}
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes = append(b.notes[:i], b.notes[i+1:]...)
			return nil
		}
	}
	return note.ErrNotFound
}

func (b *memBackend) setWriteErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

func (b *memBackend) counts() (listUsers, listNotes, writes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listUsersCalls, b.listNotesCalls, b.writeCalls
}

func (b *memBackend) storedNotes() []note.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]note.Note(nil), b.notes...)
}

type fixture struct {
	backend  *memBackend
	session  *session.Store
	nav      *fakeNavigator
	notifier *fakeNotifier
	deps     Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	b := &memBackend{}
	c := cache.New()
	f := &fixture{
		backend:  b,
		session:  session.NewStore(),
		nav:      &fakeNavigator{},
		notifier: &fakeNotifier{},
	}

	seq := 0
	f.deps = Deps{
		Users:     resource.NewUsers(c, b),
		Notes:     resource.NewNotes(c, b),
		Session:   f.session,
		Navigator: f.nav,
		Notifier:  f.notifier,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewID: func() model.ID {
			seq++
			return model.ID("note-" + strconv.Itoa(seq))
		},
	}

	return f
}
