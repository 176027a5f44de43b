package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent XP ledger entries",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Progress()
	if err != nil {
		return err
	}

	entries := rec.XPHistory
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	if len(entries) == 0 {
		fmt.Println("No XP history yet.")
		return nil
	}
	// Newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("%s  %+5d  %-13s %s\n",
			e.Time.UTC().Format("2006-01-02 15:04"), e.Amount, e.Source, e.Detail)
	}
	return nil
}
