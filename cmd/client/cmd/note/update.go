package note

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sticky/internal/domain/note"
	"sticky/internal/model"
)

var (
	updateHeading     string
	updateDescription string
)

var UpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Изменить заметку",
	Long: `Заменяет заголовок и описание заметки.

Не указанные флаги сохраняют текущее значение.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("heading") && !cmd.Flags().Changed("description") {
			return errors.New("укажите --heading или --description")
		}

		notes, err := openNotes(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer notes.Close()

		if err := notes.OpenUpdate(model.ID(args[0])); err != nil {
			return fmt.Errorf("заметка %s: %w", args[0], err)
		}
		if cmd.Flags().Changed("heading") {
			notes.SetUpdateHeading(updateHeading)
		}
		if cmd.Flags().Changed("description") {
			notes.SetUpdateDescription(updateDescription)
		}

		updated, err := notes.ConfirmUpdate(cmd.Context())
		if err != nil {
			notes.CloseUpdate()
			return err
		}

		id := updated.ID
		if id.IsZero() {
			id = model.ID(args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Заметка %s обновлена\n", id)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVar(&updateHeading, "heading", "", "новый заголовок")
	UpdateCmd.Flags().StringVar(&updateDescription, "description", "", "новое описание")
}

var DeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Удалить заметку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer notes.Close()

		id := model.ID(args[0])
		if _, ok := note.Find(notes.View().Notes, id); !ok {
			return fmt.Errorf("заметка %s: %w", id, note.ErrNotFound)
		}

		if err := notes.Delete(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Заметка %s удалена\n", id)
		return nil
	},
}
