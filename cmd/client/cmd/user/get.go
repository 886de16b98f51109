package user

import (
	"errors"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
	"sticky/internal/cache"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

var getEmail string

var GetCmd = &cobra.Command{
	Use:   "get [ID]",
	Short: "Показать пользователя",
	Long:  `Пользователь по ID или, с флагом --email, по email.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		var (
			entry cache.Entry[user.User]
			ref   string
		)
		switch {
		case getEmail != "":
			ref = getEmail
			entry = app.Users().ByEmail.Query(cmd.Context(), getEmail)
		case len(args) == 1:
			ref = args[0]
			entry = app.Users().ByID.Query(cmd.Context(), model.ID(args[0]))
		default:
			return errors.New("укажите ID или --email")
		}

		if !entry.IsSuccess() {
			return entryErr(ref, entry.Status.String(), entry.Err)
		}

		printUser(cmd.OutOrStdout(), entry.Data)
		return nil
	},
}

func init() {
	GetCmd.Flags().StringVarP(&getEmail, "email", "e", "", "email пользователя")
}
