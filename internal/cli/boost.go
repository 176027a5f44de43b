package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crisnc100/flexbreak/internal/domain"
)

func init() {
	boostActivateCmd.Flags().IntVar(&boostHours, "hours", 0, "Boost duration in hours (0 = configured default)")
	boostActivateCmd.Flags().Float64Var(&boostMultiplier, "multiplier", 0, "XP multiplier while active (0 = configured default)")
	boostAddCmd.Flags().IntVarP(&boostAddCount, "count", "n", 1, "Number of boosts to add")

	boostCmd.AddCommand(boostActivateCmd)
	boostCmd.AddCommand(boostDeactivateCmd)
	boostCmd.AddCommand(boostAddCmd)
	rootCmd.AddCommand(boostCmd)
}

var (
	boostHours      int
	boostMultiplier float64
	boostAddCount   int
)

var boostCmd = &cobra.Command{
	Use:   "boost",
	Short: "Show or manage the XP boost",
	RunE:  runBoostStatus,
}

var boostActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Activate an XP boost",
	RunE:  runBoostActivate,
}

var boostDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Deactivate the current boost without refunding it",
	RunE:  runBoostDeactivate,
}

var boostAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Grant additional boost units",
	RunE:  runBoostAdd,
}

func printBoost(b domain.BoostState, now time.Time) {
	if b.Active && b.EndsAt != nil {
		fmt.Printf("Boost ACTIVE: %.1fx until %s (%s left)\n",
			b.Multiplier, b.EndsAt.UTC().Format("2006-01-02 15:04"),
			b.EndsAt.Sub(now).Round(time.Minute))
	} else {
		fmt.Println("Boost inactive.")
	}
	fmt.Printf("Available boosts: %d\n", b.AvailableBoosts)
}

func runBoostStatus(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Progress()
	if err != nil {
		return err
	}
	printBoost(rec.Boost, time.Now())
	return nil
}

func runBoostActivate(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	ok, state, err := svc.ActivateBoost(boostHours, boostMultiplier)
	if err != nil {
		return err
	}
	if !ok {
		if state.Active {
			fmt.Println("A boost is already active.")
		} else {
			fmt.Println("No boosts available. Level up to earn more.")
		}
		return nil
	}
	printBoost(state, time.Now())
	return nil
}

func runBoostDeactivate(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := svc.DeactivateBoost()
	if err != nil {
		return err
	}
	printBoost(state, time.Now())
	return nil
}

func runBoostAdd(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := svc.AddBoosts(boostAddCount)
	if err != nil {
		return err
	}
	fmt.Printf("Added %d boost(s).\n", boostAddCount)
	printBoost(state, time.Now())
	return nil
}
