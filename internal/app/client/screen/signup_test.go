package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sticky/internal/domain/user"
)

func TestSignup_ValidatesSequentially(t *testing.T) {
	f := newFixture(t)
	signup := NewSignup(f.deps)
	ctx := context.Background()

	steps := []struct {
		fill      func()
		wantField string
		wantHint  string
	}{
		{fill: func() {}, wantField: FieldFirstName, wantHint: HintFirstName},
		{fill: func() { signup.SetFirstName("Ada") }, wantField: FieldLastName, wantHint: HintLastName},
		{fill: func() { signup.SetLastName("Lovelace") }, wantField: FieldEmail, wantHint: HintEmail},
		{fill: func() { signup.SetEmail("ada@b.com") }, wantField: FieldPassword, wantHint: HintPassword},
	}

	for _, step := range steps {
		step.fill()
		_, err := signup.Submit(ctx)

		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, step.wantField, fieldErr.Field)

		view := signup.View()
		assert.Equal(t, step.wantField, view.ErrorField, "подсвечено только одно поле")
		assert.Equal(t, step.wantHint, view.Hint)
	}

	_, _, writes := f.backend.counts()
	assert.Zero(t, writes)
}

func TestSignup_BlankNamesRejected(t *testing.T) {
	f := newFixture(t)
	signup := NewSignup(f.deps)
	signup.SetFirstName("   ")
	signup.SetLastName("Lovelace")
	signup.SetEmail("ada@b.com")
	signup.SetPassword("secret1")

	_, err := signup.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, FieldFirstName, signup.View().ErrorField)
}

func TestSignup_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signup := NewSignup(f.deps)
	fill := func() {
		signup.SetFirstName("Ada")
		signup.SetLastName("Lovelace")
		signup.SetEmail("ada@b.com")
		signup.SetPassword("secret1")
	}

	fill()
	created, err := signup.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	email, ok := f.session.Email()
	assert.True(t, ok)
	assert.Equal(t, "ada@b.com", email)
	assert.Equal(t, []string{RouteNotes}, f.nav.Routes())
	assert.Equal(t, []string{MsgSignupSuccess}, f.notifier.Successes())
	assert.Equal(t, SignupView{}, signup.View(), "форма сброшена")

	fill()
	_, err = signup.Submit(ctx)
	require.NoError(t, err)
	assert.Len(t, f.notifier.Successes(), 1, "уведомление один раз на экземпляр")

	u, ok := user.FindByEmail(f.backend.users, "ada@b.com")
	require.True(t, ok)
	assert.Equal(t, "secret1", u.Password)
}

func TestSignup_ThenLoginSeesNewUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	login := NewLogin(f.deps)
	login.SetEmail("ada@b.com")
	login.SetPassword("secret1")
	require.ErrorIs(t, login.Submit(ctx), user.ErrNotFound)

	signup := NewSignup(f.deps)
	signup.SetFirstName("Ada")
	signup.SetLastName("Lovelace")
	signup.SetEmail("ada@b.com")
	signup.SetPassword("secret1")
	_, err := signup.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, login.Submit(ctx))
}

func TestSignup_FailureKeepsForm(t *testing.T) {
	f := newFixture(t)
	f.backend.setWriteErr(errors.New("conflict"))

	signup := NewSignup(f.deps)
	signup.SetFirstName("Ada")
	signup.SetLastName("Lovelace")
	signup.SetEmail("ada@b.com")
	signup.SetPassword("secret1")

	_, err := signup.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{MsgCheckCredentials}, f.notifier.Failures())
	assert.Equal(t, "ada@b.com", signup.View().Email)
	assert.Empty(t, signup.View().ErrorField)
	assert.Empty(t, f.nav.Routes())

	_, ok := f.session.Email()
	assert.False(t, ok)
}

func TestSignup_EditingClearsOnlyThatField(t *testing.T) {
	f := newFixture(t)
	signup := NewSignup(f.deps)

	_, _ = signup.Submit(context.Background())
	require.Equal(t, FieldFirstName, signup.View().ErrorField)

	signup.SetLastName("Lovelace")
	assert.Equal(t, FieldFirstName, signup.View().ErrorField)

	signup.SetFirstName("Ada")
	assert.Empty(t, signup.View().ErrorField)
}
