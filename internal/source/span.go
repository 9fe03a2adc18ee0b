package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // inclusive, in bytes
	End   uint32 // exclusive, in bytes
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftLeft moves s back by n bytes. n may not exceed s.Start — shifting
// past the start of the file would produce a nonsensical negative offset, so
// such a call is a no-op and returns s unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start - n,
		End:   s.End - n,
	}
}

// ShiftRight moves s forward by n bytes. n may not exceed s.Len() — shifting
// a span further than its own width would let it overtake what it used to
// cover, so such a call is a no-op and returns s unchanged.
func (s Span) ShiftRight(n uint32) Span {
	if n > s.Len() {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// ZeroideToStart collapses s to a zero-length span at its start offset, used
// to anchor a caret diagnostic at the beginning of a token or node.
func (s Span) ZeroideToStart() Span {
	s.End = s.Start
	return s
}

// ZeroideToEnd collapses s to a zero-length span at its end offset, used to
// anchor a diagnostic at the position just past a token or node (e.g. "expected ';' here").
func (s Span) ZeroideToEnd() Span {
	s.Start = s.End
	return s
}
