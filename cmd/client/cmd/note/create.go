// cmd/client/cmd/note/create.go
package note

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sticky/cmd/client/cmd/ui"
	"sticky/internal/app/client/screen"
)

var (
	createHeading     string
	createDescription string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать заметку",
	Long: `Создает заметку от имени текущего пользователя.

Заголовок и описание обязательны. Не заданные флагами значения
запрашиваются интерактивно.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		notes, err := openNotes(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer notes.Close()

		prompt := ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		heading, err := prompt.ValueOrPrompt(createHeading, "Заголовок: ")
		if err != nil {
			return err
		}
		description, err := prompt.ValueOrPrompt(createDescription, "Описание: ")
		if err != nil {
			return err
		}

		notes.SetHeading(heading)
		notes.SetDescription(description)

		created, err := notes.Create(cmd.Context())
		if err != nil {
			var fieldErr *screen.FieldError
			if errors.As(err, &fieldErr) {
				return fmt.Errorf("поле %s не может быть пустым", fieldErr.Field)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Заметка создана, ID: %s\n", created.ID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createHeading, "heading", "", "заголовок")
	CreateCmd.Flags().StringVar(&createDescription, "description", "", "описание")
}
