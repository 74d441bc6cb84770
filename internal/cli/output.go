package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/tessro/tapedeck/internal/core"
)

// NewTable creates a table that renders to out.
func NewTable(out io.Writer, headers ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(termWidth())
	if len(headers) > 0 {
		t.AppendHeader(table.Row(headers))
	}
	return t
}

func termWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// StatusIcon returns an icon for the given boolean status.
func StatusIcon(active bool) string {
	if active {
		return "●"
	}
	return "○"
}

// TruncateString truncates s to maxLen display cells, adding "…" if truncated.
func TruncateString(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "…")
}

// FormatDuration formats a duration in seconds as mm:ss or hh:mm:ss.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// colorSwatch paints a swatch in the mix color.
func colorSwatch(c core.Color) string {
	switch c {
	case core.ColorOrange:
		return text.FgYellow.Sprint("■")
	case core.ColorPurple:
		return text.FgMagenta.Sprint("■")
	case core.ColorGreen:
		return text.FgGreen.Sprint("■")
	case core.ColorRed:
		return text.FgRed.Sprint("■")
	}
	return text.FgHiWhite.Sprint("■")
}
