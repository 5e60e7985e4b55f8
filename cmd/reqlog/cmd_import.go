package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	harimport "github.com/sadopc/reqlog/internal/import/har"
)

func newImportCmd(a *app) *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "import <file.har>",
		Short: "Append the requests from a HAR file to the history",
		Long: `Append the requests from a HAR file to the history, keeping their original
timestamps. Entries are filed under their URL host unless --service is given.
Bodies that are not JSON are dropped.`,
		Example: `  reqlog import session.har
  reqlog import session.har --service users`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			records, err := harimport.ParseHAR(data)
			if err != nil {
				return err
			}

			if service != "" {
				name, err := a.cfg.ResolveService(service)
				if err != nil {
					return err
				}
				for i := range records {
					records[i].Service = name
				}
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			for _, r := range records {
				if _, err := store.Insert(cmd.Context(), r); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d requests from %s\n", len(records), args[0])
			return err
		},
	}

	cmd.Flags().StringVarP(&service, "service", "s", "", "service alias to file every entry under")
	return cmd
}
