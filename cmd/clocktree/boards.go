package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	boardsOpts = struct {
		file string
	}{}

	boardsCmd = &cobra.Command{
		Use:   "boards",
		Short: "List board profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := catalog(boardsOpts.file)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIASES\tDESCRIPTION")
			for _, p := range boards {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, strings.Join(p.Aliases, ","), p.Description)
			}
			return w.Flush()
		},
	}
)

func init() {
	boardsCmd.Flags().StringVarP(&boardsOpts.file, "file", "f", "", "board file to list instead of the built-in boards")
}
