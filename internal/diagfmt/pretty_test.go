package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"toyc/internal/diag"
	"toyc/internal/source"
)

func TestPretty_PathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int main() {\n  return 0;\n}\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.tc", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 3}, "unexpected token"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.tc"},
		{"relative", PathModeRelative, "src/test.tc"},
		{"basename", PathModeBasename, "test.tc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: fs.BaseDir()})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPretty_IncludesSeverityAndCode(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tc", []byte("int x\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnexpectedChar, source.Span{File: fileID, Start: 0, End: 1}, "bad char"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()
	if !strings.Contains(out, "ERROR") {
		t.Fatalf("expected severity ERROR in output, got %q", out)
	}
	if !strings.Contains(out, "LEX1001") {
		t.Fatalf("expected code LEX1001 in output, got %q", out)
	}
	if !strings.Contains(out, "bad char") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestPretty_ShowPreviewDrawsCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tc", []byte("int main() { return 1 }\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpected, source.Span{File: fileID, Start: 22, End: 23}, "expected ';'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowPreview: true})
	out := buf.String()
	if !strings.Contains(out, "int main()") {
		t.Fatalf("expected source preview line, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret underline, got %q", out)
	}
}
