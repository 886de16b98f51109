// cmd/client/cmd/shell.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"sticky/cmd/client/cmd/types"
	"sticky/cmd/client/cmd/ui"
	"sticky/internal/app/client"
	"sticky/internal/app/client/screen"
	"sticky/internal/domain/note"
	"sticky/internal/model"
)

var metricsAddr string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Интерактивный режим",
	Long: `Интерактивный режим с экранами входа, регистрации и заметок.

Кэш запросов живет всё время работы оболочки, поэтому повторные
переходы между экранами не загружают данные заново.
Введите help для списка команд.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := metricsAddr
		if addr == "" {
			addr = app.Config().MetricsAddr
		}
		if err := app.StartMetrics(ctx, addr); err != nil {
			return err
		}

		if err := app.CheckConnection(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v\n", err)
		}

		sh := NewShell(app, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		return sh.Run(ctx)
	},
}

func init() {
	shellCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "адрес HTTP сервера метрик, например :9090")
}

// Shell - REPL поверх экранов. Экран заметок открывается при переходе
// на /notes и закрывается при уходе с него.
type Shell struct {
	app    *client.App
	prompt *ui.Prompter
	out    io.Writer
	errOut io.Writer
	nav    *ui.Navigator
	deps   screen.Deps
	log    *slog.Logger

	login  *screen.Login
	signup *screen.Signup
	notes  *screen.Notes
}

func NewShell(app *client.App, in io.Reader, out, errOut io.Writer) *Shell {
	initial := screen.RouteLogin
	if _, err := types.RequireSession(app); err == nil {
		initial = screen.RouteNotes
	}

	nav := ui.NewNavigator(out, initial)
	deps := app.ScreenDeps(nav, ui.NewNotifier(out, errOut))

	return &Shell{
		app:    app,
		prompt: ui.NewPrompter(in, out),
		out:    out,
		errOut: errOut,
		nav:    nav,
		deps:   deps,
		log:    app.Logger().With(slog.String("component", "shell")),
		login:  screen.NewLogin(deps),
		signup: screen.NewSignup(deps),
	}
}

// Run читает команды до exit, конца ввода или отмены ctx
func (s *Shell) Run(ctx context.Context) error {
	defer s.closeNotes()

	fmt.Fprintln(s.out, "STICKY. Введите help для списка команд.")
	s.enter(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.prompt.Line(color.CyanString("sticky %s> ", s.nav.Route()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("ошибка чтения команды: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		route := s.nav.Route()
		s.log.Debug("Команда", slog.String("name", fields[0]), slog.String("route", route))
		quit, err := s.exec(ctx, fields[0], fields[1:])
		if err != nil {
			fmt.Fprintln(s.errOut, color.RedString("Ошибка: %v", err))
		}
		if quit {
			return nil
		}
		if s.nav.Route() != route {
			s.enter(ctx)
		}
	}
}

func (s *Shell) exec(ctx context.Context, name string, args []string) (bool, error) {
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		s.help()
		return false, nil
	case "whoami":
		email, err := types.RequireSession(s.app)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, email)
		return false, nil
	}

	switch s.nav.Route() {
	case screen.RouteNotes:
		return false, s.execNotes(ctx, name, args)
	case screen.RouteSignup:
		return false, s.execSignup(ctx, name)
	default:
		return false, s.execLogin(ctx, name, args)
	}
}

func (s *Shell) execLogin(ctx context.Context, name string, args []string) error {
	switch name {
	case "login":
		email := ""
		if len(args) > 0 {
			email = args[0]
		}
		email, err := s.prompt.ValueOrPrompt(email, "Email: ")
		if err != nil {
			return err
		}
		password, err := s.prompt.Secret("Пароль: ")
		if err != nil {
			return err
		}

		s.login.SetEmail(email)
		s.login.SetPassword(password)
		err = s.login.Submit(ctx)
		var fieldErr *screen.FieldError
		if errors.As(err, &fieldErr) {
			view := s.login.View()
			return fmt.Errorf("%s; %s", view.EmailHint, view.PasswordHint)
		}
		return err
	case "signup":
		s.nav.Navigate(screen.RouteSignup)
		return nil
	case "notes":
		if _, err := types.RequireSession(s.app); err != nil {
			return err
		}
		s.nav.Navigate(screen.RouteNotes)
		return nil
	}
	return unknownCommand(name)
}

func (s *Shell) execSignup(ctx context.Context, name string) error {
	switch name {
	case "signup":
		values := make([]string, 4)
		prompts := []string{"Имя: ", "Фамилия: ", "Email: "}
		for i, p := range prompts {
			v, err := s.prompt.Line(p)
			if err != nil {
				return err
			}
			values[i] = v
		}
		password, err := s.prompt.Secret("Пароль: ")
		if err != nil {
			return err
		}
		values[3] = password

		s.signup.SetFirstName(values[0])
		s.signup.SetLastName(values[1])
		s.signup.SetEmail(values[2])
		s.signup.SetPassword(values[3])

		_, err = s.signup.Submit(ctx)
		var fieldErr *screen.FieldError
		if errors.As(err, &fieldErr) {
			return errors.New(s.signup.View().Hint)
		}
		return err
	case "login", "back":
		s.nav.Navigate(screen.RouteLogin)
		return nil
	}
	return unknownCommand(name)
}

func (s *Shell) execNotes(ctx context.Context, name string, args []string) error {
	if s.notes == nil {
		return errors.New("экран заметок не открыт")
	}

	switch name {
	case "list", "ls":
		s.printNotes()
		return nil
	case "refresh":
		if err := s.notes.Refresh(ctx); err != nil {
			return err
		}
		s.printNotes()
		return nil
	case "add":
		heading, err := s.prompt.Line("Заголовок: ")
		if err != nil {
			return err
		}
		description, err := s.prompt.Line("Описание: ")
		if err != nil {
			return err
		}

		s.notes.SetHeading(heading)
		s.notes.SetDescription(description)
		if _, err := s.notes.Create(ctx); err != nil {
			var fieldErr *screen.FieldError
			if errors.As(err, &fieldErr) {
				return fmt.Errorf("поле %s не может быть пустым", fieldErr.Field)
			}
			return err
		}
		s.printNotes()
		return nil
	case "edit":
		if len(args) != 1 {
			return errors.New("использование: edit ID")
		}
		if err := s.notes.OpenUpdate(model.ID(args[0])); err != nil {
			return err
		}
		defer s.notes.CloseUpdate()

		dialog := s.notes.View().Dialog
		heading, err := s.prompt.Line(fmt.Sprintf("Заголовок [%s]: ", dialog.Heading))
		if err != nil {
			return err
		}
		description, err := s.prompt.Line(fmt.Sprintf("Описание [%s]: ", dialog.Description))
		if err != nil {
			return err
		}
		if heading != "" {
			s.notes.SetUpdateHeading(heading)
		}
		if description != "" {
			s.notes.SetUpdateDescription(description)
		}

		if _, err := s.notes.ConfirmUpdate(ctx); err != nil {
			return err
		}
		s.printNotes()
		return nil
	case "delete", "rm":
		if len(args) != 1 {
			return errors.New("использование: delete ID")
		}
		id := model.ID(args[0])
		if _, ok := note.Find(s.notes.View().Notes, id); !ok {
			return note.ErrNotFound
		}
		if err := s.notes.Delete(ctx, id); err != nil {
			return err
		}
		s.printNotes()
		return nil
	case "logout":
		s.notes.Logout()
		return nil
	}
	return unknownCommand(name)
}

// enter готовит экран текущего маршрута
func (s *Shell) enter(ctx context.Context) {
	if s.nav.Route() != screen.RouteNotes {
		s.closeNotes()
		return
	}
	if s.notes != nil {
		return
	}

	s.notes = screen.NewNotes(s.deps)
	if err := s.notes.Load(ctx); err != nil {
		fmt.Fprintln(s.errOut, color.RedString("Ошибка: %v", err))
		return
	}
	s.printNotes()
}

func (s *Shell) closeNotes() {
	if s.notes != nil {
		s.notes.Close()
		s.notes = nil
	}
}

func (s *Shell) printNotes() {
	view := s.notes.View()
	switch {
	case view.Err != nil:
		fmt.Fprintln(s.errOut, color.RedString("Ошибка: %v", view.Err))
		return
	case view.Loading:
		fmt.Fprintln(s.out, "Загрузка...")
		return
	}

	fmt.Fprintf(s.out, "Заметки %s:\n", view.Email)
	if len(view.Notes) == 0 {
		fmt.Fprintln(s.out, "  (пусто)")
		return
	}
	for _, n := range view.Notes {
		fmt.Fprintf(s.out, "  [%s] %s: %s\n", n.ID, n.Heading, n.Description)
	}
}

func (s *Shell) help() {
	var lines []string
	switch s.nav.Route() {
	case screen.RouteNotes:
		lines = []string{
			"list             показать заметки",
			"refresh          перезагрузить заметки",
			"add              создать заметку",
			"edit ID          изменить заметку",
			"delete ID        удалить заметку",
			"logout           вернуться к экрану входа",
		}
	case screen.RouteSignup:
		lines = []string{
			"signup           заполнить форму регистрации",
			"login            вернуться к экрану входа",
		}
	default:
		lines = []string{
			"login [EMAIL]    войти",
			"signup           перейти к регистрации",
			"notes            открыть заметки сохраненной сессии",
		}
	}
	lines = append(lines, "whoami           email текущей сессии", "exit             выйти")

	for _, l := range lines {
		fmt.Fprintln(s.out, "  "+l)
	}
}

func unknownCommand(name string) error {
	return fmt.Errorf("неизвестная команда %q, введите help", name)
}
