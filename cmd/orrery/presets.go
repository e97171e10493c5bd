package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plus3/orrery/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in systems",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := presetsTable()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func presetsTable() (string, error) {
	tbl := newTable("preset", "bodies", "cameras", "seed")
	for _, name := range config.Presets() {
		sys, err := config.LoadSystem(name)
		if err != nil {
			return "", fmt.Errorf("preset %q: %w", name, err)
		}
		tbl.Row(name, strconv.Itoa(len(sys.Bodies)), strconv.Itoa(len(sys.Cameras)), strconv.FormatUint(sys.Seed, 10))
	}
	return titleStyle.Render("built-in systems") + "\n" + tbl.Render(), nil
}
