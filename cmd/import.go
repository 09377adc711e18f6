package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vkiss/memoriter/internal/app"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a document as a cleaned note",
	Long: "Extracts text from the document, cleans it through the AI pipeline\n" +
		"(falling back to offline formatting per chunk) and stores it as a note.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetUint("topic")
		if topicID == 0 {
			return fmt.Errorf("--topic is required")
		}

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			base := filepath.Base(args[0])
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		// The pipeline degrades to offline formatting without a backend,
		// so a missing API key must not block the import. Any other
		// startup failure surfaces as-is.
		a, err := newApp(cmd, true)
		if errors.Is(err, app.ErrBackendInit) {
			a, err = newApp(cmd, false)
			if err == nil {
				fmt.Println("No LLM backend available; using offline formatting only.")
			}
		}
		if err != nil {
			return err
		}
		defer a.Close()

		note, err := a.Content.ImportDocument(cmd.Context(), a.UserID, topicID, title, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Imported %s as note %d (%d chars)\n", args[0], note.ID, len(note.Content))
		return nil
	},
}

func init() {
	importCmd.Flags().Uint("topic", 0, "Topic to file the note under")
	importCmd.Flags().String("title", "", "Note title (defaults to the file name)")
}
