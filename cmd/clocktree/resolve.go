package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"omibyte.io/clocktree/chip"
	"omibyte.io/clocktree/clock"
	"omibyte.io/clocktree/sim"
)

var (
	resolveOpts = struct {
		board     string
		file      string
		registers bool
		timeout   time.Duration
	}{}

	resolveCmd = &cobra.Command{
		Use:   "resolve",
		Short: "Apply a board profile and print every clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := selectProfile(resolveOpts.file, resolveOpts.board)
			if err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr())
			dev := sim.New(sim.WithLogger(log))
			defer dev.Close()

			tree, err := clock.New(dev.Registers(), clock.WithLogger(log))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), resolveOpts.timeout)
			defer cancel()
			if err = p.Apply(ctx, tree); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n\n", p.Name, chip.Device)
			if err = printReport(out, tree.Report()); err != nil {
				return err
			}
			if resolveOpts.registers {
				fmt.Fprintln(out)
				return printRegisters(out, dev.Registers().Snapshot())
			}
			return nil
		},
	}
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveOpts.board, "board", "b", "", "board name or alias")
	resolveCmd.Flags().StringVarP(&resolveOpts.file, "file", "f", "", "board file to read instead of the built-in boards")
	resolveCmd.Flags().BoolVarP(&resolveOpts.registers, "registers", "r", false, "dump the non-zero registers")
	resolveCmd.Flags().DurationVar(&resolveOpts.timeout, "timeout", 100*time.Millisecond, "how long to wait for each oscillator")
}

func printReport(out io.Writer, entries []clock.Entry) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLOCK\tSOURCE\tFREQUENCY\tREADY")
	for _, e := range entries {
		freq := formatHz(e.Frequency)
		if e.Err != nil {
			freq = "-"
		}
		fmt.Fprintf(w, "%s\t%v\t%s\t%t\n", e.Name, e.Source, freq, e.Ready)
	}
	return w.Flush()
}

func printRegisters(out io.Writer, words []uint32) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REGISTER\tVALUE")
	for i, v := range words {
		if v != 0 {
			fmt.Fprintf(w, "%s\t0x%08X\n", chip.RegisterNames[i], v)
		}
	}
	return w.Flush()
}

// formatHz renders f in the largest unit that keeps it at or above one.
func formatHz(f uint32) string {
	switch {
	case f >= 1_000_000:
		return strconv.FormatFloat(float64(f)/1e6, 'f', -1, 64) + " MHz"
	case f >= 1_000:
		return strconv.FormatFloat(float64(f)/1e3, 'f', -1, 64) + " kHz"
	default:
		return strconv.FormatUint(uint64(f), 10) + " Hz"
	}
}
