package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sticky/internal/domain/user"
)

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.backend.users = []user.User{{ID: "1", Email: "a@b.com", Password: "secret1"}}

	login := NewLogin(f.deps)
	login.SetEmail("a@b.com")
	login.SetPassword("secret1")

	require.NoError(t, login.Submit(context.Background()))

	email, ok := f.session.Email()
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", email)
	assert.Equal(t, []string{RouteNotes}, f.nav.Routes())
	assert.Equal(t, []string{MsgLoginSuccess}, f.notifier.Successes())
	assert.Equal(t, LoginView{}, login.View(), "форма очищена")
}

func TestLogin_SuccessNotificationOncePerInstance(t *testing.T) {
	f := newFixture(t)
	f.backend.users = []user.User{{ID: "1", Email: "a@b.com", Password: "secret1"}}
	ctx := context.Background()

	login := NewLogin(f.deps)
	for i := 0; i < 2; i++ {
		login.SetEmail("a@b.com")
		login.SetPassword("secret1")
		require.NoError(t, login.Submit(ctx))
	}
	assert.Len(t, f.notifier.Successes(), 1)
	assert.Len(t, f.nav.Routes(), 2)

	remounted := NewLogin(f.deps)
	remounted.SetEmail("a@b.com")
	remounted.SetPassword("secret1")
	require.NoError(t, remounted.Submit(ctx))
	assert.Len(t, f.notifier.Successes(), 2)

	listUsers, _, _ := f.backend.counts()
	assert.Equal(t, 1, listUsers, "список пользователей берется из кэша")
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.backend.users = []user.User{{ID: "1", Email: "a@b.com", Password: "secret1"}}

	login := NewLogin(f.deps)
	login.SetEmail("a@b.com")
	login.SetPassword("secret2")

	err := login.Submit(context.Background())
	assert.ErrorIs(t, err, user.ErrInvalidAuth)

	_, ok := f.session.Email()
	assert.False(t, ok, "сессия не установлена")

	view := login.View()
	assert.True(t, view.PasswordError)
	assert.False(t, view.EmailError)
	assert.Equal(t, HintPassword, view.PasswordHint)
	assert.Equal(t, "a@b.com", view.Email, "форма не очищается")
	assert.Equal(t, []string{MsgCheckCredentials}, f.notifier.Failures())
	assert.Empty(t, f.nav.Routes())
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture(t)
	f.backend.users = []user.User{{ID: "1", Email: "a@b.com", Password: "secret1"}}
	f.session.SetEmail("prev@b.com")

	login := NewLogin(f.deps)
	login.SetEmail("x@b.com")
	login.SetPassword("secret1")

	err := login.Submit(context.Background())
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Equal(t, []string{MsgUserNotFound}, f.notifier.Failures())

	email, _ := f.session.Email()
	assert.Equal(t, "prev@b.com", email)
	assert.Empty(t, f.nav.Routes())
}

func TestLogin_InvalidInputFlagsBothFields(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{name: "empty", email: "", password: "", wantField: FieldEmail},
		{name: "bad email", email: "a@b", password: "secret1", wantField: FieldEmail},
		{name: "short password", email: "a@b.com", password: "12345", wantField: FieldPassword},
		{name: "password padded to six", email: "a@b.com", password: "  12345  ", wantField: FieldPassword},
		{name: "whitespace in email", email: "a b@c.com", password: "secret1", wantField: FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			login := NewLogin(f.deps)
			login.SetEmail(tt.email)
			login.SetPassword(tt.password)

			err := login.Submit(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, user.ErrInvalidInput)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantField, fieldErr.Field)

			view := login.View()
			assert.True(t, view.EmailError)
			assert.True(t, view.PasswordError)
			assert.Equal(t, HintEmail, view.EmailHint)

			listUsers, _, _ := f.backend.counts()
			assert.Zero(t, listUsers, "запрос не отправляется")
			assert.Empty(t, f.notifier.Failures())
		})
	}
}

func TestLogin_PasswordComparedExactly(t *testing.T) {
	f := newFixture(t)
	f.backend.users = []user.User{{ID: "1", Email: "a@b.com", Password: "secret1"}}

	login := NewLogin(f.deps)
	login.SetEmail("a@b.com")
	login.SetPassword(" secret1 ")

	err := login.Submit(context.Background())
	assert.ErrorIs(t, err, user.ErrInvalidAuth)
}

func TestLogin_EditingClearsFieldError(t *testing.T) {
	f := newFixture(t)
	login := NewLogin(f.deps)

	require.Error(t, login.Submit(context.Background()))
	require.True(t, login.View().EmailError)

	login.SetEmail("a@b.com")
	view := login.View()
	assert.False(t, view.EmailError)
	assert.True(t, view.PasswordError)

	login.SetPassword("secret1")
	assert.False(t, login.View().PasswordError)
}

func TestLogin_UsersQueryError(t *testing.T) {
	f := newFixture(t)
	f.backend.usersErr = errors.New("backend is down")

	login := NewLogin(f.deps)
	login.SetEmail("a@b.com")
	login.SetPassword("secret1")

	err := login.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Error: backend is down"}, f.notifier.Failures())

	_, ok := f.session.Email()
	assert.False(t, ok)
	assert.False(t, login.View().Submitting)
}
