package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	achievementsCmd.Flags().BoolVarP(&achievementsAll, "all", "a", false, "Include locked achievements")
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsAll bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show unlocked achievements",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Progress()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(rec.Achievements))
	for id := range rec.Achievements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	unlocked := 0
	for _, id := range ids {
		a := rec.Achievements[id]
		if a.Completed {
			unlocked++
		}
	}
	fmt.Printf("Achievements: %d/%d unlocked\n\n", unlocked, len(ids))

	for _, id := range ids {
		a := rec.Achievements[id]
		if a.Completed {
			when := ""
			if a.DateCompleted != nil {
				when = ", " + a.DateCompleted.UTC().Format("2006-01-02")
			}
			fmt.Printf("  [x] %-20s %s (+%d XP%s)\n", id, a.Title, a.RewardXP, when)
		} else if achievementsAll {
			fmt.Printf("  [ ] %-20s %s (%d/%d)\n", id, a.Title, a.Progress, a.Requirement)
		}
	}
	return nil
}
