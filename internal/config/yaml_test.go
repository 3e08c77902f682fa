package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingIsNotError(t *testing.T) {
	o, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if o.S != nil {
		t.Fatalf("missing file should yield zero-value overrides")
	}
}

func TestLoadFileAndMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := "s: 4\nl: 0.2\ng_gigabits: 100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	base := trivial()
	merged := o.Merge(base)

	if merged.S != 4 {
		t.Fatalf("merged.S = %d, want 4", merged.S)
	}
	if merged.L != 0.2 {
		t.Fatalf("merged.L = %v, want 0.2", merged.L)
	}
	if merged.M != base.M {
		t.Fatalf("merged.M should be untouched, got %d want %d", merged.M, base.M)
	}
}
