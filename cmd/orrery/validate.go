package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plus3/orrery/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a system file or preset and show how it resolves",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolP("watch", "w", false, "re-validate the file whenever it changes")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ref := viper.GetString("system")
	if len(args) == 1 {
		ref = args[0]
	}
	watch, _ := cmd.Flags().GetBool("watch")

	sys, err := config.LoadSystem(ref)
	report(os.Stdout, ref, sys, err)

	if !watch {
		if err != nil {
			return errors.New("validation failed")
		}
		return nil
	}

	if _, statErr := os.Stat(ref); statErr != nil {
		return fmt.Errorf("--watch needs a system file: %w", statErr)
	}

	watcher, err := config.NewWatcher(ref)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr)
	logger.Printf("watching %s", watcher.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case res, ok := <-watcher.Results:
			if !ok {
				return nil
			}
			report(os.Stdout, res.Path, res.System, res.Err)
		}
	}
}

// report prints either the resolved system or every problem found in it.
func report(w io.Writer, ref string, sys *config.System, err error) {
	if err != nil {
		fmt.Fprintln(w, errStyle.Render("✗ "+ref))
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
		return
	}

	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✓ %s: %q, %d bodies, %d cameras, seed %d",
		ref, sys.Name, len(sys.Bodies), len(sys.Cameras), sys.Seed)))
	fmt.Fprintln(w, systemTable(sys))
}
