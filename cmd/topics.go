package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics under a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectID, _ := cmd.Flags().GetUint("subject")
		if subjectID == 0 {
			return fmt.Errorf("--subject is required")
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		topics, err := a.Content.ListTopics(cmd.Context(), a.UserID, subjectID)
		if err != nil {
			return err
		}
		if len(topics) == 0 {
			fmt.Println("No topics under this subject yet.")
			return nil
		}

		fmt.Printf("%-5s  %s\n", "ID", "Title")
		for _, t := range topics {
			fmt.Printf("%-5d  %s\n", t.ID, t.Title)
		}
		return nil
	},
}

var topicsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a topic under a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectID, _ := cmd.Flags().GetUint("subject")
		if subjectID == 0 {
			return fmt.Errorf("--subject is required")
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		topic, err := a.Content.CreateTopic(cmd.Context(), a.UserID, subjectID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created topic %d: %s\n", topic.ID, topic.Title)
		return nil
	},
}

var topicsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a topic and everything beneath it",
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

		if err := a.Content.DeleteTopic(cmd.Context(), a.UserID, id); err != nil {
			return err
		}
		fmt.Printf("Deleted topic %d\n", id)
		return nil
	},
}

func init() {
	topicsListCmd.Flags().Uint("subject", 0, "Parent subject id")
	topicsAddCmd.Flags().Uint("subject", 0, "Parent subject id")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsAddCmd)
	topicsCmd.AddCommand(topicsRmCmd)
}
