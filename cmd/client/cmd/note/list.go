// cmd/client/cmd/note/list.go
package note

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sticky/internal/domain/note"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список заметок",
	Long: `Заметки текущего пользователя в порядке, в котором их вернул бэкенд.

Форматы вывода: simple, table, json.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		notes, err := openNotes(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer notes.Close()

		items := notes.View().Notes
		out := cmd.OutOrStdout()

		switch listFormat {
		case "json":
			return printNotesJSON(out, items)
		case "table":
			return printNotesTable(out, items)
		default:
			return printNotesSimple(out, items)
		}
	},
}

func printNotesSimple(w io.Writer, notes []note.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(w, "Заметки не найдены")
		return nil
	}

	fmt.Fprintf(w, "Найдено заметок: %d\n\n", len(notes))

	for i, n := range notes {
		fmt.Fprintf(w, "%d. %s\n", i+1, n.Heading)
		fmt.Fprintf(w, "   %s\n", n.Description)
		fmt.Fprintf(w, "   ID: %s\n", n.ID)
		fmt.Fprintln(w)
	}

	return nil
}

func printNotesTable(w io.Writer, notes []note.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(w, "Заметки не найдены")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tЗаголовок\tОписание\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t\n")

	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", n.ID, n.Heading, n.Description)
	}

	return tw.Flush()
}

func printNotesJSON(w io.Writer, notes []note.Note) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(notes)
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
}
