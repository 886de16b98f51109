package user

import (
	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
	"sticky/internal/app/client/resource"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список пользователей",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		entry := app.Users().List.Query(cmd.Context(), resource.None{})
		if !entry.IsSuccess() {
			return entryErr("", entry.Status.String(), entry.Err)
		}

		return printUsersTable(cmd.OutOrStdout(), entry.Data)
	},
}
