package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/codeviz/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List or clear saved render sessions",
	RunE:  runSessionsList,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear [id]",
	Short: "Delete one session, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsClear,
}

func init() {
	sessionsCmd.AddCommand(sessionsClearCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No saved sessions")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %6s  %-8s  %s\n", "ID", "UPDATED", "PASSES", "THEME", "DATASET")
	fmt.Println(strings.Repeat("─", 96))
	for _, s := range sessions {
		fmt.Printf("%-36s  %-19s  %6d  %-8s  %s\n",
			s.ID,
			s.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
			s.Passes,
			s.State.Style.Theme,
			s.Dataset,
		)
	}
	fmt.Printf("\n%d session(s), last used %s ago\n", len(sessions), formatAge(time.Since(sessions[0].UpdatedAt)))
	return nil
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		if err := db.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted session %s\n", args[0])
		return nil
	}

	n, err := db.Clear()
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d session(s)\n", n)
	return nil
}

func formatAge(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}
