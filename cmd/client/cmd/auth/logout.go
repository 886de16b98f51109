package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
)

var forget bool

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти",
	Long: `Возвращает на экран входа. Сохраненный email остается,
пока не указан флаг --forget.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if !forget {
			fmt.Fprintln(cmd.OutOrStdout(), "Сессия сохранена. Чтобы забыть email, используйте --forget")
			return nil
		}

		app.Session().SetEmail("")
		fmt.Fprintln(cmd.OutOrStdout(), "Сессия очищена")
		return nil
	},
}

func init() {
	LogoutCmd.Flags().BoolVar(&forget, "forget", false, "удалить сохраненный email")
}
