package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show the upcoming review load per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		child, err := childID(cmd)
		if err != nil {
			return err
		}
		days, _ := cmd.Flags().GetInt("days")

		svc, cleanup, err := openService(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		buckets, err := svc.Forecast(cmd.Context(), child, days)
		if err != nil {
			return err
		}

		for _, b := range buckets {
			fmt.Printf("%s  %3d  %s\n",
				b.Date.Format("Mon 2006-01-02"),
				b.Count,
				strings.Repeat("#", b.Count),
			)
		}
		return nil
	},
}

func init() {
	forecastCmd.Flags().Int("days", 7, "Number of days to forecast")
}
