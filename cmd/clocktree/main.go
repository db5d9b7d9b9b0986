package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "clocktree",
		Short: "Resolve and check clock tree bring-up profiles",
		Long: `clocktree applies board clock profiles to a simulated device, reports the
resulting frequency of every node and checks profiles for settings the
hardware would reject.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every register write")
	rootCmd.AddCommand(boardsCmd, resolveCmd, checkCmd)
}

// newLogger writes warnings to w, or everything down to debug records when
// verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
