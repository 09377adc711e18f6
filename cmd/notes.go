package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes under a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetUint("topic")
		if topicID == 0 {
			return fmt.Errorf("--topic is required")
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		notes, err := a.Content.ListNotes(cmd.Context(), a.UserID, topicID)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes under this topic yet.")
			return nil
		}

		fmt.Printf("%-5s  %-40s  %s\n", "ID", "Title", "Length")
		for _, n := range notes {
			fmt.Printf("%-5d  %-40s  %d chars\n", n.ID, n.Title, len(n.Content))
		}
		return nil
	},
}

var notesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a note from a text file or literal content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetUint("topic")
		if topicID == 0 {
			return fmt.Errorf("--topic is required")
		}

		content, err := noteContentFromFlags(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		note, err := a.Content.CreateNote(cmd.Context(), a.UserID, topicID, args[0], content)
		if err != nil {
			return err
		}
		fmt.Printf("Created note %d: %s\n", note.ID, note.Title)
		return nil
	},
}

var notesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a note's content (drops its generated questions)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		content, err := noteContentFromFlags(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Content.UpdateNoteContent(cmd.Context(), a.UserID, id, content); err != nil {
			return err
		}
		fmt.Printf("Updated note %d. Questions derived from the old content were removed.\n", id)
		return nil
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note and its generated questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Content.DeleteNote(cmd.Context(), a.UserID, id); err != nil {
			return err
		}
		fmt.Printf("Deleted note %d\n", id)
		return nil
	},
}

// noteContentFromFlags resolves the note body from --file or --content.
func noteContentFromFlags(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	literal, _ := cmd.Flags().GetString("content")

	switch {
	case file != "" && literal != "":
		return "", fmt.Errorf("--file and --content are mutually exclusive")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	case literal != "":
		return literal, nil
	default:
		return "", fmt.Errorf("either --file or --content is required")
	}
}

func init() {
	notesListCmd.Flags().Uint("topic", 0, "Parent topic id")
	notesAddCmd.Flags().Uint("topic", 0, "Parent topic id")
	notesAddCmd.Flags().String("file", "", "Read note content from this file")
	notesAddCmd.Flags().String("content", "", "Literal note content")
	notesUpdateCmd.Flags().String("file", "", "Read note content from this file")
	notesUpdateCmd.Flags().String("content", "", "Literal note content")

	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesUpdateCmd)
	notesCmd.AddCommand(notesRmCmd)
}
