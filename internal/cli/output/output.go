// Package output renders CLI results in text, markdown or JSON form,
// adapting automatically to whether stdout is a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how results render.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes results and status lines to a pair of streams.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    Mode
	isTTY   bool
	profile termenv.Profile
}

// NewRenderer creates a renderer, detecting TTY state from the out stream.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state. Used by
// tests to pin behavior.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	profile := termenv.Ascii
	if isTTY {
		profile = termenv.EnvColorProfile()
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY, profile: profile}
}

// Resolved maps auto mode to text on a TTY and markdown otherwise.
func (r *Renderer) Resolved() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsJSON reports whether results should render as JSON.
func (r *Renderer) IsJSON() bool { return r.Resolved() == ModeJSON }

// Out returns the result stream.
func (r *Renderer) Out() io.Writer { return r.out }

// Table renders a header and rows in the resolved mode. JSON mode callers
// should prefer JSON with a structured value.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	h := make(table.Row, len(header))
	for i, c := range header {
		h[i] = c
	}
	t.AppendHeader(h)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}

	if r.Resolved() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// JSON renders v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Println writes a plain line to the result stream.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Successf writes a status line, colored green on a TTY.
func (r *Renderer) Successf(format string, args ...any) {
	r.status("2", format, args...)
}

// Warnf writes a status line, colored yellow on a TTY.
func (r *Renderer) Warnf(format string, args ...any) {
	r.status("3", format, args...)
}

// Errorf writes an error line to the error stream, colored red on a TTY.
func (r *Renderer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(r.errOut, termenv.String(msg).Foreground(r.profile.Color("1")).String())
}

func (r *Renderer) status(color string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(r.out, termenv.String(msg).Foreground(r.profile.Color(color)).String())
}
