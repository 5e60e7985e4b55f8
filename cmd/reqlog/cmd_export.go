package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/reqlog/internal/export"
	"github.com/sadopc/reqlog/internal/export/har"
)

func newExportCmd(a *app) *cobra.Command {
	var since, service, format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export logged requests as HAR or curl commands",
		Example: `  reqlog export --since 2025-03-01 > history.har
  reqlog export --format curl --service users`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "har" && format != "curl" {
				return fmt.Errorf("unsupported format %q (use har or curl)", format)
			}
			from, err := parseSince(since, a.cfg.DateLayout)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := queryRecords(cmd, a, store, service, from)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if format == "curl" {
				for _, r := range records {
					if _, err := fmt.Fprintln(w, export.AsCurl(r)); err != nil {
						return err
					}
				}
				return nil
			}

			data, err := har.Export(records, version)
			if err != nil {
				return fmt.Errorf("encoding HAR: %w", err)
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only export requests after this date")
	cmd.Flags().StringVarP(&service, "service", "s", "", "only export requests to this service alias")
	cmd.Flags().StringVarP(&format, "format", "f", "har", "output format: har, curl")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
