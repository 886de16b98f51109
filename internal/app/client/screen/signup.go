package screen

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"sticky/internal/cache"
	"sticky/internal/domain/user"
)

// SignupView - состояние экрана регистрации. Ошибка бывает не более чем у одного поля.
type SignupView struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	ErrorField string
	Hint       string
}

// Signup - экран регистрации
type Signup struct {
	create   *cache.Mutation[user.User, user.User]
	session  Session
	nav      Navigator
	notifier Notifier
	log      *slog.Logger

	mu         sync.Mutex
	form       user.User
	errorField string
	notified   bool
}

func NewSignup(d Deps) *Signup {
	return &Signup{
		create:   d.Users.Create,
		session:  d.Session,
		nav:      d.Navigator,
		notifier: d.Notifier,
		log:      d.logger("signup"),
	}
}

func (s *Signup) SetFirstName(v string) { s.set(FieldFirstName, func(u *user.User) { u.FirstName = v }) }
func (s *Signup) SetLastName(v string)  { s.set(FieldLastName, func(u *user.User) { u.LastName = v }) }
func (s *Signup) SetEmail(v string)     { s.set(FieldEmail, func(u *user.User) { u.Email = v }) }
func (s *Signup) SetPassword(v string)  { s.set(FieldPassword, func(u *user.User) { u.Password = v }) }

// set меняет поле формы и снимает с него ошибку
func (s *Signup) set(field string, apply func(*user.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.form)
	if s.errorField == field {
		s.errorField = ""
	}
}

func (s *Signup) View() SignupView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SignupView{
		FirstName:  s.form.FirstName,
		LastName:   s.form.LastName,
		Email:      s.form.Email,
		Password:   s.form.Password,
		ErrorField: s.errorField,
		Hint:       hintFor(s.errorField),
	}
}

// firstInvalidField проверяет поля по порядку и возвращает первое с ошибкой
func firstInvalidField(u user.User) string {
	switch {
	case !user.ValidateName(u.FirstName):
		return FieldFirstName
	case !user.ValidateName(u.LastName):
		return FieldLastName
	case !user.ValidateEmail(u.Email):
		return FieldEmail
	case !user.ValidatePassword(u.Password):
		return FieldPassword
	}
	return ""
}

func hintFor(field string) string {
	switch field {
	case FieldFirstName:
		return HintFirstName
	case FieldLastName:
		return HintLastName
	case FieldEmail:
		return HintEmail
	case FieldPassword:
		return HintPassword
	}
	return ""
}

// Submit создает пользователя и открывает сессию
func (s *Signup) Submit(ctx context.Context) (user.User, error) {
	s.mu.Lock()
	form := s.form
	if field := firstInvalidField(form); field != "" {
		s.errorField = field
		s.mu.Unlock()
		return user.User{}, &FieldError{Field: field}
	}
	s.mu.Unlock()

	created, err := s.create.Mutate(ctx, form)
	if err != nil {
		s.log.Debug("Регистрация не удалась", slog.Any("error", err))
		s.notifier.Failure(MsgCheckCredentials)
		return user.User{}, fmt.Errorf("ошибка регистрации: %w", err)
	}

	s.session.SetEmail(form.Email)

	s.mu.Lock()
	first := !s.notified
	s.notified = true
	s.form = user.User{}
	s.errorField = ""
	s.mu.Unlock()

	if first {
		s.notifier.Success(MsgSignupSuccess)
	}
	s.nav.Navigate(RouteNotes)

	return created, nil
}
