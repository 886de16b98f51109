package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для входа и регистрации
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление сессией",
	Long:  `Регистрация, вход, выход и просмотр текущей сессии.`,
}
