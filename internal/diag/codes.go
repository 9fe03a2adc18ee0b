package diag

import "fmt"

// Code identifies a diagnostic's category. ToyC's pipeline only ever raises
// lexical, syntactic, I/O and project-level diagnostics: semantic errors are
// reported through the analyzer's own message list (spec.md §4.3, §7), not
// through this catalogue.
type Code uint16

const (
	UnknownCode Code = 0

	LexInfo            Code = 1000
	LexUnexpectedChar  Code = 1001
	LexMalformedNumber Code = 1002

	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpected        Code = 2002
	SynUnclosedParen   Code = 2003
	SynUnclosedBrace   Code = 2004

	IOInfo         Code = 4000
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002

	ProjInfo          Code = 5000
	ProjMissingModule Code = 5001
	ProjInvalidPath   Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:            "lexical analysis information",
	LexUnexpectedChar:  "unexpected character",
	LexMalformedNumber: "malformed number literal",

	SynInfo:            "syntax analysis information",
	SynUnexpectedToken: "unexpected token",
	SynExpected:        "expected token not found",
	SynUnclosedParen:   "unclosed parenthesis",
	SynUnclosedBrace:   "unclosed brace",

	IOInfo:          "I/O information",
	IOLoadFileError: "could not read source file",
	IOWriteError:    "could not write output file",

	ProjInfo:          "project information",
	ProjMissingModule: "missing module",
	ProjInvalidPath:   "invalid path",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
