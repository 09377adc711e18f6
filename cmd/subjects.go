package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "Manage subjects",
}

var subjectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		subjects, err := a.Content.ListSubjects(cmd.Context(), a.UserID)
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Println("No subjects yet. Add one with: memoriter subjects add <title>")
			return nil
		}

		fmt.Printf("%-5s  %s\n", "ID", "Title")
		for _, s := range subjects {
			fmt.Printf("%-5d  %s\n", s.ID, s.Title)
		}
		return nil
	},
}

var subjectsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		sub, err := a.Content.CreateSubject(cmd.Context(), a.UserID, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created subject %d: %s\n", sub.ID, sub.Title)
		return nil
	},
}

var subjectsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a subject and everything beneath it",
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

		if err := a.Content.DeleteSubject(cmd.Context(), a.UserID, id); err != nil {
			return err
		}
		fmt.Printf("Deleted subject %d\n", id)
		return nil
	},
}

func init() {
	subjectsCmd.AddCommand(subjectsListCmd)
	subjectsCmd.AddCommand(subjectsAddCmd)
	subjectsCmd.AddCommand(subjectsRmCmd)
}

// parseID parses a positive numeric id argument.
func parseID(arg string) (uint, error) {
	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id: %q", arg)
	}
	return uint(n), nil
}
