package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisnc100/flexbreak/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, and streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Progress()
	if err != nil {
		return err
	}

	level := domain.LevelForXP(rec.TotalXP)
	fmt.Printf("Level %d — %s\n", level.Level, level.Title)
	fmt.Printf("  XP:            %d", rec.TotalXP)
	if toNext := domain.XPToNextLevel(rec.TotalXP); toNext > 0 {
		fmt.Printf(" (%d to next level)", toNext)
	}
	fmt.Println()
	fmt.Printf("  Streak:        %d days (best %d)\n", rec.Statistics.CurrentStreak, rec.Statistics.BestStreak)
	fmt.Printf("  Routines:      %d (%d minutes total)\n", rec.Statistics.TotalRoutines, rec.Statistics.TotalMinutes)
	fmt.Printf("  Areas covered: %d\n", len(rec.Statistics.UniqueAreas))

	if rec.Boost.Active {
		fmt.Printf("  Boost:         %.1fx active until %s\n", rec.Boost.Multiplier, rec.Boost.EndsAt.Format("Jan 2 15:04"))
	} else if rec.Boost.AvailableBoosts > 0 {
		fmt.Printf("  Boost:         %d available\n", rec.Boost.AvailableBoosts)
	}
	return nil
}
