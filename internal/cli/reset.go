package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all progress to a fresh record",
	Long: `Reset XP, level, statistics, achievements and challenges to a fresh
record. Access flags such as premium are preserved.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		fmt.Print("This erases all progress (access flags are kept). Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Reset()
	if err != nil {
		return err
	}
	fmt.Printf("Progress reset. Level %d, %d XP.\n", rec.Level, rec.TotalXP)
	return nil
}
