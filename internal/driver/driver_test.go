package driver_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toyc/internal/driver"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.tc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := driver.Tokenize(filepath.Join(t.TempDir(), "missing.tc"), 100); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestTokenizeReturnsTokenStream(t *testing.T) {
	path := writeTempSource(t, "int main() { return 0; }")
	result, err := driver.Tokenize(path, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", result.Bag.Items())
	}
	if len(result.Tokens) == 0 {
		t.Fatalf("expected a non-empty token stream")
	}
}

func TestParseReturnsAST(t *testing.T) {
	path := writeTempSource(t, "int main() { return 0; }")
	result, err := driver.Parse(path, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", result.Bag.Items())
	}
	if len(result.Unit.Functions) != 1 {
		t.Fatalf("expected 1 parsed function, got %d", len(result.Unit.Functions))
	}
}

func TestCompileProducesAssembly(t *testing.T) {
	path := writeTempSource(t, "int main() { return 0; }")
	result, err := driver.Compile(path, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Assembly, "main:") {
		t.Fatalf("expected assembly to contain a main label, got:\n%s", result.Assembly)
	}
}

func TestCompileFailsOnSemanticError(t *testing.T) {
	path := writeTempSource(t, "int main() { return missing(); }")
	result, err := driver.Compile(path, 100)
	if err == nil {
		t.Fatalf("expected an error for an undefined function call")
	}
	if len(result.SemaErrors) == 0 {
		t.Fatalf("expected SemaErrors to be populated")
	}
	if result.Assembly != "" {
		t.Fatalf("expected no assembly to be generated on semantic failure")
	}
}

func TestCompileFailsOnSyntaxError(t *testing.T) {
	path := writeTempSource(t, "int main() { return 0 }")
	result, err := driver.Compile(path, 100)
	if err == nil {
		t.Fatalf("expected an error for a missing semicolon")
	}
	if !result.Bag.HasErrors() {
		t.Fatalf("expected the diagnostic bag to record the syntax error")
	}
}
