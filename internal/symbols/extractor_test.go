//go:build cgo

package symbols

import (
	"context"
	"testing"
)

func TestExtractSourceGo(t *testing.T) {
	source := []byte(`package main

type Store struct {
	entries map[string]string
}

func NewStore() *Store {
	return &Store{entries: map[string]string{}}
}

func (s *Store) Get(key string) string {
	return s.entries[key]
}

func helper() {
	// private helper
}
`)

	e := NewExtractor()
	if e == nil {
		t.Skip("tree-sitter not available")
	}

	syms, err := e.ExtractSource(context.Background(), "store.go", source, LangGo)
	if err != nil {
		t.Fatalf("ExtractSource failed: %v", err)
	}

	// Should find: Store (type), NewStore (function), Get (method), helper (function)
	if len(syms) < 4 {
		t.Errorf("expected at least 4 symbols, got %d", len(syms))
		for _, s := range syms {
			t.Logf("  %s: %s (%s)", s.Kind, s.Name, s.Container)
		}
	}

	var foundType, foundMethod bool
	for _, s := range syms {
		if s.Name == "Store" && s.Kind == "type" {
			foundType = true
		}
		if s.Name == "Get" && s.Kind == "method" {
			foundMethod = true
		}
	}
	if !foundType {
		t.Error("did not find Store type")
	}
	if !foundMethod {
		t.Error("did not find Get method")
	}
}

func TestExtractSourcePython(t *testing.T) {
	source := []byte(`class Widget:
    def __init__(self, name):
        self.name = name

    def render(self):
        return self.name

def make_widget(name):
    return Widget(name)
`)

	e := NewExtractor()
	if e == nil {
		t.Skip("tree-sitter not available")
	}

	syms, err := e.ExtractSource(context.Background(), "widget.py", source, LangPython)
	if err != nil {
		t.Fatalf("ExtractSource failed: %v", err)
	}

	var foundClass, foundFunc bool
	for _, s := range syms {
		if s.Name == "Widget" && s.Kind == "class" {
			foundClass = true
		}
		if s.Name == "make_widget" {
			foundFunc = true
		}
	}
	if !foundClass {
		t.Error("did not find Widget class")
	}
	if !foundFunc {
		t.Error("did not find make_widget function")
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor()
	if e == nil {
		t.Skip("tree-sitter not available")
	}

	syms, err := e.Extract(context.Background(), "README.md", []byte("# hello"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if syms != nil {
		t.Errorf("expected no symbols for unsupported extension, got %v", syms)
	}
}

func TestExtractDetectsLanguageFromPath(t *testing.T) {
	e := NewExtractor()
	if e == nil {
		t.Skip("tree-sitter not available")
	}

	syms, err := e.Extract(context.Background(), "main.go", []byte("package main\n\nfunc main() {}\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(syms) != 1 || syms[0].Name != "main" {
		t.Errorf("expected main function symbol, got %v", syms)
	}
	if syms[0].Line != 3 {
		t.Errorf("expected line 3, got %d", syms[0].Line)
	}
}
