package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moussahe/schoolaris-revision/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export review history and stats to an Excel workbook",
	Args:  cobra.ExactArgs(1),
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

		logs, err := svc.History(cmd.Context(), child)
		if err != nil {
			return err
		}
		stats, err := svc.Stats(cmd.Context(), child)
		if err != nil {
			return err
		}

		if err := export.WriteWorkbook(args[0], child, logs, stats); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Printf("Exported %d review(s) to %s\n", len(logs), args[0])
		return nil
	},
}
