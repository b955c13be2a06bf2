package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moussahe/schoolaris-revision/internal/revision"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the most overdue card interactively",
	Long: "Fetches the most overdue card, asks the AI tutor for a question,\n" +
		"reads the answer from stdin and submits it for evaluation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		child, err := childID(cmd)
		if err != nil {
			return err
		}

		svc, cleanup, err := openService(cmd, true)
		if err != nil {
			return err
		}
		defer cleanup()

		due, err := svc.DueCards(cmd.Context(), child, 1)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("No cards due. Well done!")
			return nil
		}
		card := due[0]

		q, err := svc.GetQuestion(cmd.Context(), card.Card.ID, child)
		if err != nil {
			return err
		}

		fmt.Printf("[%s / %s] %s\n\n", q.WeakArea.Subject, q.WeakArea.GradeLevel, q.WeakArea.Topic)
		fmt.Println(q.Question)
		fmt.Print("\n> ")

		started := time.Now()
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read answer: %w", err)
		}
		answer = strings.TrimSpace(answer)

		result, err := svc.SubmitReview(cmd.Context(), revision.SubmitReviewInput{
			CardID:           q.CardID,
			ChildID:          child,
			Question:         q.Question,
			ExpectedAnswer:   q.ExpectedAnswer,
			ChildAnswer:      answer,
			TimeSpentSeconds: int(time.Since(started).Seconds()),
		})
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n", result.Feedback)
		fmt.Printf("%s\n", result.Encouragement)
		if result.IsMastered {
			fmt.Println("This topic is now mastered. It won't come back.")
		} else {
			fmt.Printf("Next review: %s (in %d day(s))\n",
				result.NextReviewAt.Format("2006-01-02"), result.NewInterval)
		}
		return nil
	},
}
