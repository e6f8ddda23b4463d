package main

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "yaml", "human"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatResponseJSON(t *testing.T) {
	resp := &cleanupResponse{Removed: 3, Remaining: 7}

	out, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}

	var decoded cleanupResponse
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Removed != 3 || decoded.Remaining != 7 {
		t.Errorf("unexpected round trip: %+v", decoded)
	}
}

func TestFormatResponseYAML(t *testing.T) {
	resp := &cleanupResponse{Removed: 1, Remaining: 2}

	out, err := FormatResponse(resp, FormatYAML)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}

	var decoded cleanupResponse
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Removed != 1 || decoded.Remaining != 2 {
		t.Errorf("unexpected round trip: %+v", decoded)
	}
}

func TestFormatAnalyzeHuman(t *testing.T) {
	resp := &analyzeResponse{
		SymdexVersion: "0.3.0",
		TotalFiles:    5,
		Analyzed:      2,
		Cached:        2,
		Failed:        1,
		Failures:      []analyzeFailure{{Path: "bad.go", Error: "parse error"}},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	for _, want := range []string{"Files:    5", "Analyzed: 2", "bad.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, c := range cases {
		if got := formatBytes(c.in); got != c.want {
			t.Errorf("formatBytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
