// Package ui - терминальные реализации навигации и уведомлений для CLI
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sticky/internal/app/client"
	"sticky/internal/app/client/screen"
)

// Navigator запоминает текущий маршрут и сообщает о переходе
type Navigator struct {
	mu    sync.Mutex
	route string
	out   io.Writer
}

func NewNavigator(out io.Writer, initial string) *Navigator {
	return &Navigator{out: out, route: initial}
}

func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	n.route = route
	n.mu.Unlock()

	fmt.Fprintln(n.out, color.New(color.Faint).Sprintf("→ %s", route))
}

// Route - текущий маршрут
func (n *Navigator) Route() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// Notifier печатает уведомления: успех в out, ошибки в errOut
type Notifier struct {
	out    io.Writer
	errOut io.Writer
}

func NewNotifier(out, errOut io.Writer) *Notifier {
	return &Notifier{out: out, errOut: errOut}
}

func (n *Notifier) Success(msg string) {
	fmt.Fprintln(n.out, color.GreenString("✓ %s", msg))
}

func (n *Notifier) Failure(msg string) {
	fmt.Fprintln(n.errOut, color.RedString("✗ %s", msg))
}

// Prompter читает ответы пользователя. Пароль читается без эха,
// если ввод идет с терминала.
type Prompter struct {
	in  *bufio.Reader
	fd  int
	out io.Writer
	tty bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok {
		p.fd = int(f.Fd())
		p.tty = term.IsTerminal(p.fd)
	}
	return p
}

// Line печатает приглашение и читает строку без перевода строки
func (p *Prompter) Line(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret читает пароль
func (p *Prompter) Secret(prompt string) (string, error) {
	if !p.tty {
		return p.Line(prompt)
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(secret), nil
}

// ValueOrPrompt возвращает значение флага или спрашивает его
func (p *Prompter) ValueOrPrompt(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.Line(prompt)
}

// CommandDeps собирает зависимости экранов для разовой команды.
// Переходы между экранами в разовых командах не печатаются.
func CommandDeps(cmd *cobra.Command, app *client.App) screen.Deps {
	nav := NewNavigator(io.Discard, screen.RouteLogin)
	notifier := NewNotifier(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return app.ScreenDeps(nav, notifier)
}
