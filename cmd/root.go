package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkiss/memoriter/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "memoriter",
	Short: "AI study aid for your own notes",
	Long: "Memoriter turns imported study notes into quiz questions with an LLM backend\n" +
		"and tracks daily practice goals, streaks and topic mastery.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEMORITER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(streaksCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(versionCmd)
}

// newApp builds the application from the command's flags. withBackend
// selects whether an LLM provider is required.
func newApp(cmd *cobra.Command, withBackend bool) (*app.App, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	cfgPath, _ := cmd.Flags().GetString("config")

	a, err := app.New(cmd.Context(), app.Options{
		ConfigPath:  cfgPath,
		DBPath:      dbPath,
		WithBackend: withBackend,
	})
	if err != nil {
		return nil, fmt.Errorf("start application: %w", err)
	}
	return a, nil
}
