package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create revision cards for newly detected weak areas",
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

		created, err := svc.SyncCards(cmd.Context(), child)
		if err != nil {
			return err
		}
		if created == 0 {
			fmt.Println("Nothing to sync: every weak area already has a card.")
			return nil
		}
		fmt.Printf("Created %d new revision card(s).\n", created)
		return nil
	},
}
