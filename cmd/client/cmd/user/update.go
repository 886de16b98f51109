package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

var (
	updateFirstName string
	updateLastName  string
	updateEmail     string
	updatePassword  string
)

var UpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Изменить пользователя",
	Long:  `Отправляет только поля, заданные флагами.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		req := user.UpdateRequest{ID: model.ID(args[0])}
		flags := cmd.Flags()
		if flags.Changed("first-name") {
			req.FirstName = &updateFirstName
		}
		if flags.Changed("last-name") {
			req.LastName = &updateLastName
		}
		if flags.Changed("email") {
			if !user.ValidateEmail(updateEmail) {
				return fmt.Errorf("некорректный email: %w", user.ErrInvalidInput)
			}
			req.Email = &updateEmail
		}
		if flags.Changed("password") {
			if !user.ValidatePassword(updatePassword) {
				return fmt.Errorf("пароль короче 6 символов: %w", user.ErrInvalidInput)
			}
			req.Password = &updatePassword
		}
		if req.IsEmpty() {
			return fmt.Errorf("не задано ни одного поля: %w", user.ErrInvalidInput)
		}

		updated, err := app.Users().Update.Mutate(cmd.Context(), req)
		if err != nil {
			return userErr(args[0], err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Пользователь обновлен")
		printUser(cmd.OutOrStdout(), updated)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVar(&updateFirstName, "first-name", "", "имя")
	UpdateCmd.Flags().StringVar(&updateLastName, "last-name", "", "фамилия")
	UpdateCmd.Flags().StringVarP(&updateEmail, "email", "e", "", "email")
	UpdateCmd.Flags().StringVar(&updatePassword, "password", "", "пароль")
}

var DeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Удалить пользователя",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if _, err := app.Users().Delete.Mutate(cmd.Context(), model.ID(args[0])); err != nil {
			return userErr(args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Пользователь %s удален\n", args[0])
		return nil
	},
}
