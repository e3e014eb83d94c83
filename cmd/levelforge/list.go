package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelforge/internal/levelgen"
	"github.com/vovakirdan/levelforge/internal/registry"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List level presets",
	Long:  `Shows all presets registered with levelforge.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List level features",
	Long:  `Shows the feature names accepted by --features, in builder key order.`,
	Args:  cobra.NoArgs,
	Run:   runFeatures,
}

func runPresets(_ *cobra.Command, _ []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Features")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------")
	for _, p := range presets {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Features)
	}

	fmt.Println()
	fmt.Println("Run 'levelforge generate --preset <id>' to use one.")
}

func runFeatures(_ *cobra.Command, _ []string) {
	fmt.Println("Available features:")
	fmt.Println()
	for i, f := range levelgen.AllFeatures() {
		fmt.Printf("  %d  %-10s  %s\n", i+1, f, f.Title())
	}
}
