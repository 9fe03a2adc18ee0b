package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"toyc/internal/diag"
	"toyc/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	locColor     = color.New(color.FgWhite, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	noteColor    = color.New(color.FgBlue)
)

// Pretty formats every diagnostic in bag as:
//
//	<path>:<line>:<col> <SEVERITY> <CODE>: <message>
//	    <source line>
//	    <caret underline>
//
// followed by any notes in the same shape, indented. Call bag.Sort() first
// for deterministic ordering.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, "")
		for _, note := range d.Notes {
			writeNote(w, note, fs, opts)
		}
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, indent string) {
	loc := formatLocation(d.Primary, fs, opts)
	sev := formatSeverity(d.Severity, opts.Color)
	fmt.Fprintf(w, "%s%s %s %s: %s\n", indent, colorize(opts.Color, locColor, loc), sev, d.Code.ID(), d.Message)
	if opts.ShowPreview {
		writeSourcePreview(w, d.Primary, fs, opts, indent)
	}
}

func writeNote(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	loc := formatLocation(note.Span, fs, opts)
	fmt.Fprintf(w, "    %s %s: %s\n", colorize(opts.Color, locColor, loc), colorize(opts.Color, noteColor, "note"), note.Msg)
	if opts.ShowPreview {
		writeSourcePreview(w, note.Span, fs, opts, "    ")
	}
}

func formatLocation(sp source.Span, fs *source.FileSet, opts PrettyOpts) string {
	if fs == nil {
		return fmt.Sprintf("%d:%d", sp.Start, sp.End)
	}
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := file.FormatPath(string(opts.PathMode), opts.BaseDir)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func formatSeverity(sev diag.Severity, useColor bool) string {
	text := sev.String()
	switch sev {
	case diag.SevError:
		return colorize(useColor, errorColor, text)
	case diag.SevWarning:
		return colorize(useColor, warningColor, text)
	default:
		return colorize(useColor, infoColor, text)
	}
}

func colorize(enabled bool, c *color.Color, text string) string {
	if !enabled {
		return text
	}
	return c.Sprint(text)
}

// writeSourcePreview prints the line(s) the span covers plus a caret
// underline beneath the span's columns on its first line.
func writeSourcePreview(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, indent string) {
	if fs == nil {
		return
	}
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}

	line := file.GetLine(start.Line)
	fmt.Fprintf(w, "%s    %s\n", indent, strings.TrimRight(line, "\r\n"))

	underlineLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = int(end.Col - start.Col)
	}
	col := int(start.Col)
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + strings.Repeat("^", underlineLen)
	fmt.Fprintf(w, "%s    %s\n", indent, colorize(opts.Color, caretColor, caret))
}
