// cmd/client/cmd/init.go
package cmd

import (
	"sticky/cmd/client/cmd/auth"
	"sticky/cmd/client/cmd/note"
	"sticky/cmd/client/cmd/user"
)

func init() {
	// Добавляем команды сессии
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.SignupCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	// Добавляем команды работы с заметками
	rootCmd.AddCommand(note.NoteCmd)
	note.NoteCmd.AddCommand(note.ListCmd)
	note.NoteCmd.AddCommand(note.GetCmd)
	note.NoteCmd.AddCommand(note.CreateCmd)
	note.NoteCmd.AddCommand(note.UpdateCmd)
	note.NoteCmd.AddCommand(note.DeleteCmd)

	// Добавляем команды работы с пользователями
	rootCmd.AddCommand(user.UserCmd)
	user.UserCmd.AddCommand(user.ListCmd)
	user.UserCmd.AddCommand(user.GetCmd)
	user.UserCmd.AddCommand(user.UpdateCmd)
	user.UserCmd.AddCommand(user.DeleteCmd)

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(pingCmd)
}
