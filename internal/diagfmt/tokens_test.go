package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"toyc/internal/diag"
	"toyc/internal/lexer"
	"toyc/internal/source"
)

func TestFormatTokensPretty_ListsEveryToken(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tc", []byte("int x = 1;"))
	bag := diag.NewBag(100)
	lx := lexer.New(id, fs.Get(id).Content, bag)
	toks := lx.Tokenize()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"'int'", "identifier", "\"x\"", "'='", "number", "\"1\"", "';'"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatTokensJSON_EncodesEveryToken(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tc", []byte("int x;"))
	bag := diag.NewBag(100)
	lx := lexer.New(id, fs.Get(id).Content, bag)
	toks := lx.Tokenize()

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"kind": "'int'"`) {
		t.Fatalf("expected JSON to contain the int keyword token, got:\n%s", out)
	}
	if !strings.Contains(out, `"text": "x"`) {
		t.Fatalf("expected JSON to contain identifier text, got:\n%s", out)
	}
}
