// cmd/client/cmd/auth/login.go
package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
	"sticky/cmd/client/cmd/ui"
	"sticky/internal/app/client/screen"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в STICKY",
	Long: `Вход по email и паролю.

Пароль сверяется со списком пользователей бэкенда. После входа email
сохраняется локально и используется остальными командами.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		prompt := ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		email, err := prompt.ValueOrPrompt(loginEmail, "Email: ")
		if err != nil {
			return fmt.Errorf("ошибка чтения email: %w", err)
		}
		password, err := prompt.Secret("Пароль: ")
		if err != nil {
			return err
		}

		login := screen.NewLogin(ui.CommandDeps(cmd, app))
		login.SetEmail(email)
		login.SetPassword(password)

		if err := login.Submit(cmd.Context()); err != nil {
			var fieldErr *screen.FieldError
			if errors.As(err, &fieldErr) {
				view := login.View()
				return fmt.Errorf("%s; %s", view.EmailHint, view.PasswordHint)
			}
			return err
		}

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email пользователя")
}
