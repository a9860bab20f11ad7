package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/trapbox/pkg/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in presets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available presets:")
		for _, p := range preset.List() {
			fmt.Printf("  %-20s [%-10s] %s\n", p.Name, p.Mode, p.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
