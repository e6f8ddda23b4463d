package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// ParseFormat validates the --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatJSON, FormatYAML, FormatHuman:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (want json, yaml, or human)", s)
	}
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *analyzeResponse:
		return formatAnalyzeHuman(v)
	case *statusResponse:
		return formatStatusHuman(v)
	case *clearResponse:
		return formatClearHuman(v)
	case *cleanupResponse:
		return formatCleanupHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatAnalyzeHuman(resp *analyzeResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("symdex analyze - v%s\n", resp.SymdexVersion))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Revision != "" {
		rev := resp.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		b.WriteString(fmt.Sprintf("Revision: %s", rev))
		if resp.Invalidated {
			b.WriteString("  (changed, cache invalidated)")
		}
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Files:    %d\n", resp.TotalFiles))
	b.WriteString(fmt.Sprintf("Analyzed: %d\n", resp.Analyzed))
	b.WriteString(fmt.Sprintf("Cached:   %d\n", resp.Cached))
	b.WriteString(fmt.Sprintf("Failed:   %d\n", resp.Failed))
	b.WriteString(fmt.Sprintf("Symbols:  %d\n", resp.TotalSymbols))

	if resp.Stats.FilesAnalyzed > 0 {
		b.WriteString(fmt.Sprintf("\nAnalysis time: %s total, %s avg\n",
			resp.Stats.TotalAnalysisTime.Round(time.Millisecond),
			resp.Stats.AverageAnalysisTime.Round(time.Microsecond)))
	}

	if len(resp.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range resp.Failures {
			b.WriteString(fmt.Sprintf("  ! %s: %s\n", f.Path, f.Error))
		}
	}

	return b.String(), nil
}

func formatStatusHuman(resp *statusResponse) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("symdex status - v%s\n", resp.SymdexVersion))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Repository: %s\n", resp.RepoRoot))
	if resp.GitRepo {
		head := resp.HeadCommit
		if len(head) > 12 {
			head = head[:12]
		}
		b.WriteString(fmt.Sprintf("Head: %s (dirty: %v)\n", head, resp.Dirty))
	} else {
		b.WriteString("Version control: none\n")
	}

	extractorText := "available"
	if !resp.ExtractorAvailable {
		extractorText = "unavailable (built without cgo)"
	}
	b.WriteString(fmt.Sprintf("Extractor: %s\n\n", extractorText))

	b.WriteString("Cache:\n")
	b.WriteString(fmt.Sprintf("  Files:    %d / %d\n", resp.Cache.ResidentFiles, resp.MaxEntries))
	b.WriteString(fmt.Sprintf("  Symbols:  %d\n", resp.Cache.TotalSymbols))
	b.WriteString(fmt.Sprintf("  Size:     %s\n", formatBytes(resp.Cache.SizeBytes)))
	b.WriteString(fmt.Sprintf("  Storage:  %s\n", resp.Cache.StorageDir))
	if resp.CacheRevision != "" {
		rev := resp.CacheRevision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		b.WriteString(fmt.Sprintf("  Revision: %s\n", rev))
	}

	return b.String(), nil
}

func formatClearHuman(resp *clearResponse) (string, error) {
	return fmt.Sprintf("Cache cleared (%d entries removed).\n", resp.Removed), nil
}

func formatCleanupHuman(resp *cleanupResponse) (string, error) {
	return fmt.Sprintf("Removed %d stale entries, %d remain.\n", resp.Removed, resp.Remaining), nil
}

// formatBytes formats byte size in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
