// Package manifest loads the optional symdex.toml project declaration.
//
// The manifest lets a repository declare analyzer settings next to its
// source, overriding the per-checkout .symdex/config.json values.
package manifest

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"symdex/internal/config"
)

// ManifestFile is the default filename for the project manifest
const ManifestFile = "symdex.toml"

// Manifest represents a declared project in symdex.toml
type Manifest struct {
	Project  ProjectDeclaration  `toml:"project"`
	Analyzer AnalyzerDeclaration `toml:"analyzer,omitempty"`
}

// ProjectDeclaration identifies the project
type ProjectDeclaration struct {
	// Name is the human-readable name of the project
	Name string `toml:"name"`

	// Owner is the owner reference (e.g., @team-name or user@email.com)
	Owner string `toml:"owner,omitempty"`
}

// AnalyzerDeclaration overrides analyzer configuration for this project
type AnalyzerDeclaration struct {
	// Extensions lists the file extensions to analyze (with leading dot)
	Extensions []string `toml:"extensions,omitempty"`

	// Excludes are glob patterns or directory prefixes to skip
	Excludes []string `toml:"excludes,omitempty"`

	// IncludeTests controls whether test files are analyzed
	IncludeTests *bool `toml:"include_tests,omitempty"`
}

// Load reads symdex.toml from the repo root.
// Returns (nil, nil) if no manifest exists.
func Load(repoRoot string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(repoRoot, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// ApplyTo overlays the manifest's analyzer declarations onto cfg.
// Unset manifest fields leave the config untouched.
func (m *Manifest) ApplyTo(cfg *config.Config) {
	if m == nil || cfg == nil {
		return
	}
	if len(m.Analyzer.Extensions) > 0 {
		cfg.Analyzer.Extensions = m.Analyzer.Extensions
	}
	if len(m.Analyzer.Excludes) > 0 {
		cfg.Analyzer.Excludes = m.Analyzer.Excludes
	}
	if m.Analyzer.IncludeTests != nil {
		cfg.Analyzer.IncludeTests = *m.Analyzer.IncludeTests
	}
}
