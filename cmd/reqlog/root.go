package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/reqlog/internal/config"
	"github.com/sadopc/reqlog/internal/core/history"
	"github.com/sadopc/reqlog/internal/ui/theme"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	dbPath     string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "reqlog",
		Short:         "Log API calls and browse their history in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Browse the history
  reqlog

  # Print everything since a date
  reqlog list --since 2025-03-01

  # Record a call made by another tool
  reqlog log --method POST --service users --route create \
    --url https://api.example.com/users --payload body.json --response -
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.DBPath = config.ExpandPath(a.dbPath)
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, a)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ~/.config/reqlog/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "history database path (overrides db_path from the config)")

	cmd.AddCommand(newUICmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newLogCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newServicesCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *app) openStore() (*history.Store, error) {
	store, err := history.Open(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening history at %s: %w", a.cfg.DBPath, err)
	}
	return store, nil
}

func (a *app) theme() theme.Theme {
	return theme.Resolve(a.cfg.Theme, a.cfg.ThemeDir)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "reqlog %s (%s) built %s\n", version, commit, date)
			return err
		},
	}
}
