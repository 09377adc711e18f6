package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkiss/memoriter/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quiz questions from a note",
	RunE: func(cmd *cobra.Command, args []string) error {
		noteID, _ := cmd.Flags().GetUint("note")
		if noteID == 0 {
			return fmt.Errorf("--note is required")
		}

		qt, err := questionTypeFlag(cmd)
		if err != nil {
			return err
		}
		if qt == nil {
			return fmt.Errorf("--type is required (multiple_choice, true_false or short_answer)")
		}

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		ok, err := a.QuizGen.Generate(cmd.Context(), a.UserID, noteID, *qt)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Generation produced no usable questions. Try again or check the note's content.")
			return nil
		}

		fmt.Println("Questions generated.")
		return nil
	},
}

// questionTypeFlag parses the optional --type flag.
func questionTypeFlag(cmd *cobra.Command) (*store.QuestionType, error) {
	raw, _ := cmd.Flags().GetString("type")
	if raw == "" {
		return nil, nil
	}
	qt := store.QuestionType(raw)
	if !qt.Valid() {
		return nil, fmt.Errorf("unknown question type %q (use multiple_choice, true_false or short_answer)", raw)
	}
	return &qt, nil
}

func init() {
	generateCmd.Flags().Uint("note", 0, "Source note id")
	generateCmd.Flags().String("type", "", "Question type to generate")
}
