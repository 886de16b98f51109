package user

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sticky/internal/app/client"
	"sticky/internal/domain/user"
)

// UserCmd - родительская команда для операций с пользователями бэкенда
var UserCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Пользователи бэкенда",
	Long: `Просмотр, изменение и удаление пользователей.

Бэкенд не проверяет права доступа, команды работают с любым пользователем.`,
}

func printUser(w io.Writer, u user.User) {
	fmt.Fprintf(w, "ID: %s\n", u.ID)
	fmt.Fprintf(w, "Имя: %s\n", u.FirstName)
	fmt.Fprintf(w, "Фамилия: %s\n", u.LastName)
	fmt.Fprintf(w, "Email: %s\n", u.Email)
}

func printUsersTable(w io.Writer, users []user.User) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "Пользователи не найдены")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tИмя\tФамилия\tEmail\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t\n")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", u.ID, u.FirstName, u.LastName, u.Email)
	}

	return tw.Flush()
}

// entryErr превращает неуспешную запись кэша в ошибку команды
func entryErr(ref, status string, err error) error {
	if err == nil {
		return fmt.Errorf("запрос не завершен: %s", status)
	}
	return userErr(ref, err)
}

// userErr заменяет ответ 404 бэкенда на user.ErrNotFound
func userErr(ref string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return fmt.Errorf("пользователь %s: %w", ref, user.ErrNotFound)
	}
	return err
}
