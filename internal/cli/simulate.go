package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/app/simulator"
	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/sqlite"
)

func init() {
	simulateCmd.Flags().IntVar(&simDays, "days", 7, "Number of days to simulate")
	simulateCmd.Flags().IntVar(&simSkip, "skip", 0, "Skip every Nth day (0 = never)")
	simulateCmd.Flags().IntVar(&simMinutes, "minutes", 5, "Duration of each routine")
	simulateCmd.Flags().IntVar(&simRoutines, "routines", 1, "Routines per active day")
	simulateCmd.Flags().StringVar(&simAreas, "areas", "", "Comma-separated areas to cycle through")
	rootCmd.AddCommand(simulateCmd)
}

var (
	simDays     int
	simSkip     int
	simMinutes  int
	simRoutines int
	simAreas    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Bob simulator against a throwaway store",
	Long: `Drive a synthetic user ("Bob") through N days of routines under a
fake clock and print a per-day report. Uses a temporary database; your
real progress is untouched.`,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	dir, err := os.MkdirTemp("", "flexbreak-sim-*")
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	defer os.RemoveAll(dir)

	db, err := sqlite.Open(dir)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	defer db.Close()

	clock := simulator.NewFakeClock(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	store := progress.NewStore(db, clock)
	svc := progress.NewService(store, clock, domain.NewAreaMapper(nil))

	cfg := simulator.Config{
		Days:            simDays,
		SkipEvery:       simSkip,
		DurationMinutes: simMinutes,
		RoutinesPerDay:  simRoutines,
	}
	if simAreas != "" {
		for _, raw := range strings.Split(simAreas, ",") {
			cfg.Areas = append(cfg.Areas, domain.Area(strings.TrimSpace(raw)))
		}
	}

	reports, err := simulator.Run(svc, clock, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-11s %-8s %8s %9s %6s %7s  %s\n",
		"Day", "Date", "Skipped", "XP", "Total XP", "Level", "Streak", "Unlocks")
	for _, r := range reports {
		skipped := ""
		if r.Skipped {
			skipped = "yes"
		}
		fmt.Printf("%-4d %-11s %-8s %8d %9d %6d %7d  %s\n",
			r.Day, r.Date, skipped, r.XPGained, r.TotalXP, r.Level, r.Streak,
			strings.Join(r.NewUnlocks, ", "))
	}
	return nil
}
