package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/clocktree/board"
)

var (
	checkOpts = struct {
		file string
	}{}

	errCheckFailed = errors.New("profile check failed")

	checkCmd = &cobra.Command{
		Use:   "check [board...]",
		Short: "Check board profiles against the hardware limits",
		Long: `Check applies each named profile, or every profile when none is named, to a
simulated device and reports the first setting the hardware would reject.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := catalog(checkOpts.file)
			if err != nil {
				return err
			}

			var profiles []board.Profile
			if len(args) == 0 {
				profiles = boards
			}
			for _, name := range args {
				p, err := boards.Find(name)
				if err != nil {
					return err
				}
				profiles = append(profiles, p)
			}

			out := cmd.OutOrStdout()
			var errs []error
			for _, p := range profiles {
				if err := p.Check(cmd.Context()); err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", p.Name, err)
					errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", p.Name)
			}

			if len(errs) > 0 {
				return fmt.Errorf("%w: %w", errCheckFailed, errors.Join(errs...))
			}
			return nil
		},
	}
)

func init() {
	checkCmd.Flags().StringVarP(&checkOpts.file, "file", "f", "", "board file to check instead of the built-in boards")
}
