package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newServicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the configured service aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aliases := a.cfg.Aliases()
			if len(aliases) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no service aliases configured")
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, alias := range aliases {
				fmt.Fprintf(w, "%s\t%s\n", alias, a.cfg.Services[alias])
			}
			return w.Flush()
		},
	}
}
