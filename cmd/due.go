package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List cards that are due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		child, err := childID(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		svc, cleanup, err := openService(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		cards, err := svc.DueCards(cmd.Context(), child, limit)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Println("No cards due. Well done!")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CARD\tSUBJECT\tGRADE\tTOPIC\tDUE SINCE\tREPS\tEF")
		for _, c := range cards {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.2f\n",
				shortID(c.Card.ID),
				c.WeakArea.Subject,
				c.WeakArea.GradeLevel,
				c.WeakArea.Topic,
				c.Card.NextReviewAt.Format("2006-01-02"),
				c.Card.Repetitions,
				c.Card.EaseFactor,
			)
		}
		return w.Flush()
	},
}

func init() {
	dueCmd.Flags().Int("limit", 20, "Maximum number of cards to list")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
