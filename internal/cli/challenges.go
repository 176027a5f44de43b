package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/crisnc100/flexbreak/internal/domain"
)

func init() {
	rootCmd.AddCommand(challengesCmd)
}

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Show active daily, weekly and monthly challenges",
	RunE:  runChallenges,
}

func runChallenges(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Progress()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(rec.Challenges))
	for id := range rec.Challenges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, period := range []domain.ChallengePeriod{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
		header := false
		for _, id := range ids {
			c := rec.Challenges[id]
			if c.Period != period {
				continue
			}
			if !header {
				fmt.Printf("%s:\n", period)
				header = true
			}
			mark := " "
			if c.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s — %d/%d (+%d XP, expires %s)\n",
				mark, c.Description, c.Progress, c.Target, c.RewardXP,
				c.ExpiresAt.UTC().Format("2006-01-02 15:04"))
		}
	}
	if len(ids) == 0 {
		fmt.Println("No active challenges yet. Log a routine to start a rotation.")
	}
	return nil
}
