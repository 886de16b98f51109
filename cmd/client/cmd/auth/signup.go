// cmd/client/cmd/auth/signup.go
package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
	"sticky/cmd/client/cmd/ui"
	"sticky/internal/app/client/screen"
)

var (
	signupFirstName string
	signupLastName  string
	signupEmail     string
)

var SignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Зарегистрироваться",
	Long: `Создает пользователя на бэкенде и сразу открывает сессию.

Имя и фамилия обязательны, email должен быть корректным,
пароль не короче 6 символов.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		prompt := ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		firstName, err := prompt.ValueOrPrompt(signupFirstName, "Имя: ")
		if err != nil {
			return err
		}
		lastName, err := prompt.ValueOrPrompt(signupLastName, "Фамилия: ")
		if err != nil {
			return err
		}
		email, err := prompt.ValueOrPrompt(signupEmail, "Email: ")
		if err != nil {
			return err
		}
		password, err := prompt.Secret("Пароль: ")
		if err != nil {
			return err
		}

		signup := screen.NewSignup(ui.CommandDeps(cmd, app))
		signup.SetFirstName(firstName)
		signup.SetLastName(lastName)
		signup.SetEmail(email)
		signup.SetPassword(password)

		created, err := signup.Submit(cmd.Context())
		if err != nil {
			var fieldErr *screen.FieldError
			if errors.As(err, &fieldErr) {
				return errors.New(signup.View().Hint)
			}
			return err
		}

		if !created.ID.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "ID пользователя: %s\n", created.ID)
		}

		return nil
	},
}

func init() {
	SignupCmd.Flags().StringVar(&signupFirstName, "first-name", "", "имя")
	SignupCmd.Flags().StringVar(&signupLastName, "last-name", "", "фамилия")
	SignupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "email")
}
