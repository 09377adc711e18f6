package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Export and import notes with their questions",
}

var shareExportCmd = &cobra.Command{
	Use:   "export <note-id>",
	Short: "Export a note and its questions to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteID, err := parseID(args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("note-%d.json", noteID)
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.Export.Export(cmd.Context(), a.UserID, noteID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		fmt.Printf("Exported note %d to %s\n", noteID, out)
		return nil
	},
}

var shareImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a shared note file under one of your topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetUint("topic")
		if topicID == 0 {
			return fmt.Errorf("--topic is required")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		note, err := a.Export.Import(cmd.Context(), a.UserID, topicID, data)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %q as note %d\n", note.Title, note.ID)
		return nil
	},
}

func init() {
	shareExportCmd.Flags().String("out", "", "Output file (defaults to note-<id>.json)")
	shareImportCmd.Flags().Uint("topic", 0, "Topic to file the note under")

	shareCmd.AddCommand(shareExportCmd)
	shareCmd.AddCommand(shareImportCmd)
}
