package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisnc100/flexbreak/internal/domain"
)

func init() {
	logCmd.Flags().IntVarP(&logDuration, "duration", "d", 5, "Routine duration in minutes")
	rootCmd.AddCommand(logCmd)
}

var logDuration int

var logCmd = &cobra.Command{
	Use:   "log <area>",
	Short: "Record a completed stretch routine",
	Long: `Record a completed routine for a body area (e.g. neck, "lower back").
The first routine of each day earns base XP; achievements and challenges
are re-evaluated afterwards.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	area := args[0]
	for _, extra := range args[1:] {
		area += " " + extra
	}

	summary, err := svc.RecordActivity(domain.Activity{
		Area:            domain.Area(area),
		DurationMinutes: logDuration,
	})
	if err != nil {
		return err
	}

	if summary.TotalXPGained == 0 {
		fmt.Println("Routine recorded. (No XP — not the first routine today.)")
	} else {
		fmt.Printf("Routine recorded: +%d XP\n", summary.TotalXPGained)
	}
	for _, line := range summary.Award.Breakdown {
		fmt.Printf("  +%d  %s\n", line.Amount, line.Description)
	}
	for _, a := range summary.UnlockedAchievements {
		fmt.Printf("  Achievement unlocked: %s (+%d XP)\n", a.Title, a.RewardXP)
	}
	if summary.LeveledUp {
		fmt.Printf("  Level up! Now level %d (%s).\n", summary.Level, domain.LevelTitle(summary.Level))
	}
	fmt.Printf("Streak: %d days\n", summary.CurrentStreak)
	return nil
}
