package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_palindrome"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTRUCTURE")
			for _, s := range palindrome.Strategies() {
				fmt.Fprintf(tw, "%s\t%s\n", s.Name(), s.Description())
			}
			return tw.Flush()
		},
	}
}
