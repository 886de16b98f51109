package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"sticky/internal/domain/note"
	"sticky/internal/model"
)

var GetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Показать заметку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := openNotes(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer notes.Close()

		n, ok := note.Find(notes.View().Notes, model.ID(args[0]))
		if !ok {
			return fmt.Errorf("заметка %s: %w", args[0], note.ErrNotFound)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID: %s\n", n.ID)
		fmt.Fprintf(out, "Заголовок: %s\n", n.Heading)
		fmt.Fprintf(out, "Описание: %s\n", n.Description)

		return nil
	},
}
