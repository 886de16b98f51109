package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать email текущей сессии",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		email, err := types.RequireSession(app)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), email)
		return nil
	},
}
