package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vkiss/memoriter/internal/app"
	"github.com/vkiss/memoriter/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice a quiz across one or more topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicIDs, _ := cmd.Flags().GetUintSlice("topics")
		if len(topicIDs) == 0 {
			return fmt.Errorf("--topics is required")
		}

		count, _ := cmd.Flags().GetInt("count")
		qt, err := questionTypeFlag(cmd)
		if err != nil {
			return err
		}

		// Short-answer grading uses the backend when available; multiple
		// choice and true/false work fully offline. Any other startup
		// failure surfaces as-is.
		a, err := newApp(cmd, true)
		if errors.Is(err, app.ErrBackendInit) {
			a, err = newApp(cmd, false)
		}
		if err != nil {
			return err
		}
		defer a.Close()

		if count <= 0 {
			count = a.Config.QuizSize
		}

		sess, err := a.Quiz.BuildSession(cmd.Context(), a.UserID, topicIDs, count, qt, time.Now())
		if err != nil {
			return err
		}
		if sess.Delivered() == 0 {
			fmt.Println("No questions available. Generate some first with: memoriter generate")
			return nil
		}
		if sess.Delivered() < sess.Requested {
			fmt.Printf("Only %d of the requested %d questions are available.\n\n",
				sess.Delivered(), sess.Requested)
		}

		return runQuiz(cmd, a, sess.Questions, sess.StartedAt)
	},
}

func runQuiz(cmd *cobra.Command, a *app.App, questions []store.Question, startedAt time.Time) error {
	reader := bufio.NewReader(os.Stdin)
	correctTotal := 0

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for i, q := range questions {
		fmt.Println()
		bold.Printf("%d/%d  %s\n", i+1, len(questions), q.Text)

		var correct bool
		var err error
		switch q.Type {
		case store.QuestionTypeShortAnswer:
			correct, err = askShortAnswer(cmd, a, reader, q)
		default:
			correct, err = askChoice(reader, q)
		}
		if err != nil {
			return err
		}

		if correct {
			green.Println("Correct!")
			correctTotal++
		} else {
			red.Printf("Wrong. Correct answer: %s\n", correctAnswerText(q))
		}

		if err := a.Quiz.RecordResult(cmd.Context(), a.UserID, q.ID, correct, time.Now()); err != nil {
			return err
		}
	}

	elapsed := time.Since(startedAt).Round(time.Second)
	fmt.Println()
	bold.Printf("Done: %d/%d correct in %s\n", correctTotal, len(questions), elapsed)
	return nil
}

// askChoice presents shuffled answer options and reads a numeric pick.
func askChoice(reader *bufio.Reader, q store.Question) (bool, error) {
	options := make([]store.Answer, len(q.Answers))
	copy(options, q.Answers)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i, o := range options {
		fmt.Printf("  %d) %s\n", i+1, o.Text)
	}

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read answer: %w", err)
		}

		pick, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || pick < 1 || pick > len(options) {
			fmt.Printf("Enter a number between 1 and %d.\n", len(options))
			continue
		}
		return options[pick-1].IsCorrect, nil
	}
}

// askShortAnswer reads a free-text answer and grades it with the backend
// when one is available, falling back to a normalized exact match.
func askShortAnswer(cmd *cobra.Command, a *app.App, reader *bufio.Reader, q store.Question) (bool, error) {
	fmt.Print("> ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer := strings.TrimSpace(line)

	sample := correctAnswerText(q)

	if a.Gateway != nil {
		eval, err := a.QuizGen.EvaluateShortAnswer(cmd.Context(), q.Text, sample, answer)
		if err == nil {
			if eval.Rationale != "" {
				fmt.Println(eval.Rationale)
			}
			return eval.Accepted, nil
		}
		fmt.Println("Grading backend unavailable; comparing against the sample answer.")
	}

	return strings.EqualFold(answer, strings.TrimSpace(sample)), nil
}

// correctAnswerText returns the stored correct answer of a question.
func correctAnswerText(q store.Question) string {
	for _, ans := range q.Answers {
		if ans.IsCorrect {
			return ans.Text
		}
	}
	return ""
}

func init() {
	quizCmd.Flags().UintSlice("topics", nil, "Topic ids to draw questions from")
	quizCmd.Flags().Int("count", 0, "Number of questions (defaults to the configured quiz size)")
	quizCmd.Flags().String("type", "", "Restrict to one question type")
}
