package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"symdex/internal/config"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when file is missing")
	}
}

func TestLoadAndApply(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, `
[project]
name = "widget-factory"
owner = "@platform"

[analyzer]
extensions = [".go", ".py"]
excludes = ["generated"]
include_tests = true
`)

	m, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Project.Name != "widget-factory" {
		t.Errorf("expected project name, got %q", m.Project.Name)
	}

	cfg := config.DefaultConfig()
	m.ApplyTo(cfg)

	if len(cfg.Analyzer.Extensions) != 2 {
		t.Errorf("expected 2 extensions, got %v", cfg.Analyzer.Extensions)
	}
	if !cfg.Analyzer.IncludeTests {
		t.Error("expected includeTests override")
	}
	if len(cfg.Analyzer.Excludes) != 1 || cfg.Analyzer.Excludes[0] != "generated" {
		t.Errorf("expected excludes override, got %v", cfg.Analyzer.Excludes)
	}
}

func TestApplyPartial(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, `
[project]
name = "partial"
`)

	m, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := config.DefaultConfig()
	wantExts := len(cfg.Analyzer.Extensions)
	m.ApplyTo(cfg)

	if len(cfg.Analyzer.Extensions) != wantExts {
		t.Error("extensions should be untouched when manifest omits them")
	}
	if cfg.Analyzer.IncludeTests {
		t.Error("includeTests should be untouched when manifest omits it")
	}
}

func TestLoadMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "not [valid toml")

	if _, err := Load(tmpDir); err == nil {
		t.Error("expected error for malformed manifest")
	}
}
