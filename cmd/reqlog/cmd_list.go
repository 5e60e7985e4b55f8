package main

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/sadopc/reqlog/internal/core/history"
	"github.com/sadopc/reqlog/internal/printer"
)

func newListCmd(a *app) *cobra.Command {
	var since, service string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print logged requests newer than a date",
		Long: `Print every logged request created after the start of the given day
(UTC), oldest first. Without --since the whole history is printed.`,
		Example: `  reqlog list --since 2025-03-01
  reqlog list --since 2025-03-01 --service users`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			out := cmd.OutOrStdout()
			profile := termenv.NewOutput(out).EnvColorProfile()
			return printer.New(out, a.theme(), profile).Records(records)
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only show requests after this date (layout from date_layout, default YYYY-MM-DD)")
	cmd.Flags().StringVarP(&service, "service", "s", "", "only show requests to this service alias")
	return cmd
}

// queryRecords returns the records after from, limited to the service
// behind alias when one is given.
func queryRecords(cmd *cobra.Command, a *app, store *history.Store, alias string, from time.Time) ([]history.Record, error) {
	if alias == "" {
		return store.QueryByTimeRange(cmd.Context(), from)
	}
	name, err := a.cfg.ResolveService(alias)
	if err != nil {
		return nil, err
	}
	return store.QueryByServiceAndTimeRange(cmd.Context(), name, from)
}

// parseSince reads a day in layout as UTC midnight. An empty value means
// the beginning of time.
func parseSince(value, layout string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q, want a date like %s", value, layout)
	}
	return t, nil
}
