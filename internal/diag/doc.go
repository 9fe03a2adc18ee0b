// Package diag defines the diagnostic model shared by the lexer, parser and
// driver.
//
// Diagnostic is the central record: a Severity, a Code, a human-readable
// Message and a primary source.Span, plus optional Notes for secondary spans.
// The lexer and parser build Diagnostic values with NewError and add them
// to a Bag directly; Reporter and BagReporter offer a builder-style route
// into a Bag as an alternative.
//
// Rendering lives in internal/diagfmt; this package only models the data.
package diag
