package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// execute runs the root command with args and captures stdout. Persistent
// flag globals are restored afterwards so state cannot leak between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // isolate config and keystore

	prevCfgFile, prevBackend, prevOutputDir := cfgFile, backend, outputDir
	prevJSON, prevVerbose := jsonOutput, verbose
	t.Cleanup(func() {
		cfgFile, backend, outputDir = prevCfgFile, prevBackend, prevOutputDir
		jsonOutput, verbose = prevJSON, prevVerbose
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pigment") {
		t.Errorf("output = %q", out)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var payload map[string]string
	if jsonErr := json.Unmarshal([]byte(out), &payload); jsonErr != nil {
		t.Fatalf("output is not JSON: %q", out)
	}
	if payload["version"] == "" {
		t.Errorf("payload = %v", payload)
	}
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "scenarios")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "style-transfer") {
		t.Errorf("output missing style-transfer: %q", out)
	}
}

func TestBackendsCommand(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("OPENROUTER_API_KEY", "")

	out, err := execute(t, "backends")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "gemini") || !strings.Contains(out, "openrouter") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "ready") || !strings.Contains(out, "not configured") {
		t.Errorf("availability states missing: %q", out)
	}
}

func TestReferenceFromArg(t *testing.T) {
	if ref := referenceFromArg("data:image/png;base64,aW1n"); ref.Data == "" {
		t.Error("data URI should map to inline data")
	}
	if ref := referenceFromArg("https://example.com/a.png"); ref.URL == "" {
		t.Error("URL should map to URL source")
	}
	if ref := referenceFromArg("./photo.jpg"); ref.Path == "" {
		t.Error("plain value should map to path source")
	}
}
