// Package printer writes history records as colorized plain text for the
// non-interactive list command.
package printer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/sadopc/reqlog/internal/core/display"
	"github.com/sadopc/reqlog/internal/core/history"
	"github.com/sadopc/reqlog/internal/ui/highlight"
	"github.com/sadopc/reqlog/internal/ui/theme"
)

const timestampLayout = "2006-01-02 15:04:05"

// Printer renders records to a writer using a fixed color profile.
type Printer struct {
	w         io.Writer
	formatter string
	theme     theme.Theme
	renderer  *lipgloss.Renderer
	loc       *time.Location

	timestamp lipgloss.Style
	service   lipgloss.Style
	url       lipgloss.Style
	label     lipgloss.Style
	muted     lipgloss.Style
}

// New returns a Printer writing to w with colors for profile.
func New(w io.Writer, t theme.Theme, profile termenv.Profile) *Printer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return &Printer{
		w:         w,
		formatter: highlight.FormatterFor(profile),
		theme:     t,
		renderer:  r,
		loc:       time.Local,
		timestamp: r.NewStyle().Foreground(t.Subtext),
		service:   r.NewStyle().Foreground(t.Green),
		url:       r.NewStyle().Foreground(t.Yellow),
		label:     r.NewStyle().Foreground(t.Muted),
		muted:     r.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

// Records writes every record, or a placeholder line when there are none.
func (p *Printer) Records(records []history.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(p.w, p.muted.Render(display.NoRequests))
		return err
	}
	for _, r := range records {
		if err := p.Record(r); err != nil {
			return err
		}
	}
	return nil
}

// Record writes a header line followed by the payload and response.
func (p *Printer) Record(r history.Record) error {
	method := p.renderer.NewStyle().
		Foreground(p.theme.MethodColor(r.Method)).
		Bold(true).
		Render(strings.ToUpper(r.Method))

	header := fmt.Sprintf("%s %s %s %s",
		p.timestamp.Render("["+p.formatTime(r.CreatedAt)+"]"),
		method,
		p.service.Render(r.Service),
		p.url.Render(r.FullURL),
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	p.writeDocument(&b, "payload", r.Payload)
	p.writeDocument(&b, "response", r.Response)

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) writeDocument(b *strings.Builder, name string, d history.Document) {
	b.WriteString("  ")
	b.WriteString(p.label.Render(name + ":"))
	b.WriteByte(' ')

	text := display.Text(d)
	if d.Invalid || !d.Present() {
		b.WriteString(p.muted.Render(text))
	} else {
		text = strings.TrimRight(highlight.JSON(text, p.formatter), "\n")
		b.WriteString(strings.ReplaceAll(text, "\n", "\n  "))
	}
	b.WriteByte('\n')
}

func (p *Printer) formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return t.In(p.loc).Format(timestampLayout)
}
