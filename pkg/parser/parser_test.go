package parser

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"app.py", LangPython},
		{"stubs.pyi", LangPython},
		{"service.ts", LangTypeScript},
		{"view.tsx", LangTSX},
		{"view.jsx", LangTSX},
		{"index.js", LangJavaScript},
		{"mod.mjs", LangJavaScript},
		{"main.go", LangGo},
		{"README.md", LangUnknown},
		{"Makefile", LangUnknown},
		{"UPPER.PY", LangPython},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte("def f():\n    return 1\n"), LangPython, "f.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if result.Language != LangPython {
		t.Errorf("Language = %v, want python", result.Language)
	}
	if result.HasError {
		t.Error("HasError = true for valid source")
	}
	if result.Tree.RootNode().Type() != "module" {
		t.Errorf("root type = %q, want module", result.Tree.RootNode().Type())
	}
}

func TestParse_FlagsSyntaxErrors(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte("def broken(:\n"), LangPython, "broken.py")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !result.HasError {
		t.Error("HasError = false for malformed source")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	src := "package main\n\nfunc main() {}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New()
	defer p.Close()

	result, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if result.Language != LangGo {
		t.Errorf("Language = %v, want go", result.Language)
	}
	if string(result.Source) != src {
		t.Error("Source does not round-trip file contents")
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New()
	defer p.Close()

	if _, err := p.ParseFile(path); err == nil {
		t.Error("ParseFile() succeeded for unsupported extension")
	}
}

func TestWalkTyped(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte("def f():\n    return 1\n"), LangPython, "f.py")
	if err != nil {
		t.Fatal(err)
	}

	var kinds []string
	WalkTyped(result.Tree.RootNode(), result.Source, func(n *sitter.Node, kind string, src []byte) bool {
		kinds = append(kinds, kind)
		return kind != "function_definition" // stop descent at the function
	})

	sawFunction := false
	for _, k := range kinds {
		if k == "function_definition" {
			sawFunction = true
		}
		if k == "return_statement" {
			t.Error("descended past a visitor that returned false")
		}
	}
	if !sawFunction {
		t.Error("function_definition never visited")
	}
}

func TestGetNodeText(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("def f():\n    return 1\n")
	result, err := p.Parse(source, LangPython, "f.py")
	if err != nil {
		t.Fatal(err)
	}

	fn := result.Tree.RootNode().Child(0)
	name := fn.ChildByFieldName("name")
	if got := GetNodeText(name, source); got != "f" {
		t.Errorf("GetNodeText(name) = %q, want %q", got, "f")
	}

	if got := GetNodeText(nil, source); got != "" {
		t.Errorf("GetNodeText(nil) = %q, want empty", got)
	}
	// A node span past a truncated buffer must not panic.
	if got := GetNodeText(fn, source[:3]); got != "" {
		t.Errorf("GetNodeText(truncated) = %q, want empty", got)
	}
}

func TestLineHelpers(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("def f():\n    return 1\n")
	result, err := p.Parse(source, LangPython, "f.py")
	if err != nil {
		t.Fatal(err)
	}

	fn := result.Tree.RootNode().Child(0)
	if StartLine(fn) != 1 {
		t.Errorf("StartLine = %d, want 1", StartLine(fn))
	}
	if EndLine(fn) != 2 {
		t.Errorf("EndLine = %d, want 2", EndLine(fn))
	}
}
