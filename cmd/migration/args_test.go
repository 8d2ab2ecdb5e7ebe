package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d (%v)", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", got, err)
	}
	for _, bad := range []string{"0", "-1", "two"} {
		if _, err := parseSteps([]string{bad}); err == nil {
			t.Fatalf("expected error for steps %q", bad)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("unexpected version: %d (%v)", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseTarget("1"); err != nil || v != 1 {
		t.Fatalf("unexpected target: %d (%v)", v, err)
	}
	if _, err := parseTarget("latest"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}

func TestResolveMigrationsDir_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("unexpected dir: got %q want %q", got, want)
	}
}

func TestResolveMigrationsDir_SkipsFileCandidates(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", file)
	t.Setenv("MIGRATIONS_PATH", dir)

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir: %v", err)
	}
	if want, _ := filepath.Abs(dir); got != want {
		t.Fatalf("expected MIGRATIONS_PATH dir %q, got %q", want, got)
	}
}
