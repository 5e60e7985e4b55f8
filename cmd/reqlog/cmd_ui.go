package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/sadopc/reqlog/internal/core/history"
	"github.com/sadopc/reqlog/internal/ui/browser"
	"github.com/sadopc/reqlog/internal/ui/highlight"
)

func newUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Browse the request history interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, a)
		},
	}
}

func runUI(cmd *cobra.Command, a *app) error {
	if path := os.Getenv("REQLOG_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "reqlog")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// The only fetch of the session; the browser never touches the store.
	snap, err := history.NewLoader(store).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	log.Printf("loaded %d records from %s", snap.Len(), a.cfg.DBPath)

	applyColorProfile()

	model := browser.FromSnapshot(snap, browser.Options{
		Theme:     a.theme(),
		Formatter: highlight.FormatterFor(lipgloss.ColorProfile()),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// applyColorProfile honors NO_COLOR and otherwise trusts COLORTERM when it
// reports more than the terminal probe found.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if profile != termenv.Ascii && (strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")) {
		profile = termenv.TrueColor
	}
	lipgloss.SetColorProfile(profile)
}
