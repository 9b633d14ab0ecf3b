package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCostsComplete(t *testing.T) {
	if err := DefaultCosts().Validate(); err != nil {
		t.Fatalf("default cost table invalid: %v", err)
	}
}

func TestValidateReportsMissingEntries(t *testing.T) {
	costs := DefaultCosts()
	delete(costs, CostBreed)
	delete(costs, CostTrade)
	err := costs.Validate()
	if err == nil {
		t.Fatal("expected error for missing entries")
	}
	for _, key := range []string{"breed", "trade"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name missing key %q", err, key)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := DefaultCosts()
	clone := orig.Clone()
	clone[CostBreed] = 1
	if orig[CostBreed] == 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestLoadCostsFile(t *testing.T) {
	dir := t.TempDir()

	var b strings.Builder
	for _, key := range RequiredCostKeys() {
		b.WriteString(string(key))
		b.WriteString(": 7\n")
	}
	path := filepath.Join(dir, "costs.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	costs, err := LoadCostsFile(path)
	if err != nil {
		t.Fatalf("LoadCostsFile: %v", err)
	}
	if got := costs[CostBreed]; got != 7 {
		t.Errorf("breed cost = %d, want 7", got)
	}
}

func TestLoadCostsFileRejectsIncompleteTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "costs.yaml")
	if err := os.WriteFile(path, []byte("level-up: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCostsFile(path); err == nil {
		t.Fatal("expected error for a table missing required keys")
	}
}

func TestLoadCostsFileRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "costs.yaml")
	if err := os.WriteFile(path, []byte("level-up: [not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCostsFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadCostsFileMissingFile(t *testing.T) {
	if _, err := LoadCostsFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
