package screen

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"sticky/internal/app/client/resource"
	"sticky/internal/cache"
	"sticky/internal/domain/user"
)

// LoginView - состояние экрана входа для отрисовки
type LoginView struct {
	Email         string
	Password      string
	EmailError    bool
	PasswordError bool
	EmailHint     string
	PasswordHint  string
	Submitting    bool
}

// Login - экран входа. Проверяет email и пароль по списку пользователей.
type Login struct {
	users    *cache.Query[resource.None, []user.User]
	session  Session
	nav      Navigator
	notifier Notifier
	log      *slog.Logger

	mu            sync.Mutex
	email         string
	password      string
	emailError    bool
	passwordError bool
	submitting    bool
	notified      bool
}

func NewLogin(d Deps) *Login {
	return &Login{
		users:    d.Users.List,
		session:  d.Session,
		nav:      d.Navigator,
		notifier: d.Notifier,
		log:      d.logger("login"),
	}
}

// SetEmail меняет поле email и снимает с него ошибку
func (l *Login) SetEmail(v string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.email = v
	l.emailError = false
}

// SetPassword меняет поле пароля и снимает с него ошибку
func (l *Login) SetPassword(v string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.password = v
	l.passwordError = false
}

func (l *Login) View() LoginView {
	l.mu.Lock()
	defer l.mu.Unlock()

	v := LoginView{
		Email:         l.email,
		Password:      l.password,
		EmailError:    l.emailError,
		PasswordError: l.passwordError,
		Submitting:    l.submitting,
	}
	if v.EmailError {
		v.EmailHint = HintEmail
	}
	if v.PasswordError {
		v.PasswordHint = HintPassword
	}
	return v
}

// Submit выполняет вход. Ошибки запроса показываются уведомлением
// и возвращаются вызывающему, форма остается доступной для правки.
func (l *Login) Submit(ctx context.Context) error {
	l.mu.Lock()
	email, password := l.email, l.password

	// при любой ошибке формы подсвечиваются оба поля
	if err := user.ValidateCredentials(email, password); err != nil {
		l.emailError = true
		l.passwordError = true
		l.mu.Unlock()

		field := FieldPassword
		if !user.ValidateEmail(email) {
			field = FieldEmail
		}
		return &FieldError{Field: field, Err: err}
	}
	l.submitting = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.submitting = false
		l.mu.Unlock()
	}()

	entry := l.users.Query(ctx, resource.None{})
	switch {
	case entry.IsLoading():
		// вызывающий отменил ожидание, загрузка продолжится в кэше
		return entry.Err
	case entry.IsError():
		l.notifier.Failure(failureText(entry.Err))
		return fmt.Errorf("ошибка загрузки пользователей: %w", entry.Err)
	}

	u, ok := user.FindByEmail(entry.Data, email)
	if !ok {
		l.notifier.Failure(MsgUserNotFound)
		return user.ErrNotFound
	}

	if u.Password != password {
		l.mu.Lock()
		l.passwordError = true
		l.mu.Unlock()

		l.notifier.Failure(MsgCheckCredentials)
		return user.ErrInvalidAuth
	}

	l.session.SetEmail(email)

	l.mu.Lock()
	l.email = ""
	l.password = ""
	l.emailError = false
	l.passwordError = false
	first := !l.notified
	l.notified = true
	l.mu.Unlock()

	l.log.Debug("Вход выполнен", slog.String("email", email))

	l.nav.Navigate(RouteNotes)
	if first {
		l.notifier.Success(MsgLoginSuccess)
	}

	return nil
}
