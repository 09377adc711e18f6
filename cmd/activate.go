package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Activate daily-goal tracking for a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetUint("topic")
		if topicID == 0 {
			return fmt.Errorf("--topic is required")
		}
		goal, _ := cmd.Flags().GetInt("goal")

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Tracker.Activate(cmd.Context(), a.UserID, topicID, goal, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Topic %d activated with a daily goal of %d correct answers.\n", topicID, goal)
		return nil
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Stop tracking a topic (history is kept)",
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

		if err := a.Tracker.Deactivate(cmd.Context(), a.UserID, topicID); err != nil {
			return err
		}
		fmt.Printf("Topic %d deactivated.\n", topicID)
		return nil
	},
}

func init() {
	activateCmd.Flags().Uint("topic", 0, "Topic id")
	activateCmd.Flags().Int("goal", 5, "Daily goal in correct answers")
	deactivateCmd.Flags().Uint("topic", 0, "Topic id")
}
