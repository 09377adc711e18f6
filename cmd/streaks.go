package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show streaks and mastery for your active topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		active, err := a.Store.ListActiveTopics(ctx, a.UserID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			fmt.Println("No active topics. Start with: memoriter activate --topic <id>")
			return nil
		}

		fmt.Printf("%-5s  %-30s  %-7s  %-7s  %-6s  %s\n",
			"ID", "Topic", "Streak", "Longest", "Goal", "Mastery")
		for _, at := range active {
			topic, err := a.Store.TopicByID(ctx, a.UserID, at.TopicID)
			if err != nil {
				return err
			}

			mastery, err := a.Tracker.Mastery(ctx, a.UserID, at.TopicID)
			if err != nil {
				return err
			}

			fmt.Printf("%-5d  %-30s  %-7d  %-7d  %-6d  %.0f%%\n",
				at.TopicID, topic.Title, at.CurrentStreak, at.LongestStreak,
				at.DailyGoalQuestions, mastery)
		}
		return nil
	},
}
