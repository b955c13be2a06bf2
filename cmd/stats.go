package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show revision progress for a child",
	RunE: func(cmd *cobra.Command, args []string) error {
		child, err := childID(cmd)
		if err != nil {
			return err
		}

		svc, cleanup, err := openService(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := svc.Stats(cmd.Context(), child)
		if err != nil {
			return err
		}

		fmt.Printf("Cards:        %d (%d mastered)\n", stats.TotalCards, stats.MasteredCards)
		fmt.Printf("Due today:    %d\n", stats.DueToday)
		fmt.Printf("Reviews:      %d (%.0f%% success)\n", stats.TotalReviews, stats.SuccessRate*100)
		fmt.Printf("Average EF:   %.2f\n", stats.AverageEaseFactor)
		fmt.Printf("Streak:       %d day(s)\n", stats.StreakDays)
		return nil
	},
}
