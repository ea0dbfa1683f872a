package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tama/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered scenes",
	Long:  `Shows every scene registered with the engine. Games appear in the menu; system scenes are started by id.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Kind", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----")

	for _, s := range scenes {
		kind := s.Kind.String()
		if s.Overlay {
			kind = "overlay"
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, s.ID, kind, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tama play <id>' to start a scene.")
}
