package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagSessionsLimit int
	flagDelete        int64
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded input sessions",
	Long: `Display the most recent sessions in the input journal. Sessions are
recorded by the simulators when started with --journal (or journal.enabled).

Examples:
  tama sessions
  tama sessions --limit 50
  tama sessions --delete 3`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 20, "Maximum sessions to show")
	sessionsCmd.Flags().Int64Var(&flagDelete, "delete", 0, "Delete the session with this id")
}

func runSessions(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDelete != 0 {
		if err := store.DeleteSession(flagDelete); err != nil {
			return err
		}
		fmt.Printf("Deleted session %d\n", flagDelete)
		return nil
	}

	sessions, err := store.Sessions(flagSessionsLimit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tama play --journal' to record one.")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-7s  %-9s  %-20s  %-7s  %-16s  %s\n", "ID", "Where", "Scene", "Seed", "Ticks", "Started", "End")
	fmt.Printf("  %-4s  %-7s  %-9s  %-20s  %-7s  %-16s  %s\n", "--", "-----", "-----", "----", "-----", "-------", "---")

	for _, s := range sessions {
		end := s.EndReason
		if end == "" {
			end = "(running)"
		}
		fmt.Printf("  %-4d  %-7s  %-9s  %-20s  %-7d  %-16s  %s\n",
			s.ID, s.Platform, s.RootScene, strconv.FormatInt(s.Seed, 10), s.Ticks,
			s.CreatedAt.Format("2006-01-02 15:04"), end)
	}
	return nil
}
