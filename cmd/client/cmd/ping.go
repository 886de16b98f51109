package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/types"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Проверить доступность бэкенда",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.CheckConnection(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Соединение с %s установлено\n", app.Config().APIBaseURL)
		return nil
	},
}
