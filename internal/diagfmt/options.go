// Package diagfmt renders tokens, AST trees and diagnostics produced by the
// compiler packages into the textual forms the CLI prints: a pretty,
// human-readable form and a JSON form for tooling.
package diagfmt

// PathMode controls how a diagnostic's file path is displayed; the values
// match source.File.FormatPath's mode strings directly.
type PathMode string

const (
	PathModeAuto     PathMode = "auto"
	PathModeAbsolute PathMode = "absolute"
	PathModeRelative PathMode = "relative"
	PathModeBasename PathMode = "basename"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // lines of source shown around the primary span
	PathMode    PathMode
	BaseDir     string
	ShowNotes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	IncludeNotes bool
}
