package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hyperknap/internal/instance"
)

func TestRunRequiresCommand(t *testing.T) {
	err := run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Fatalf("want usage error, got %v", err)
	}

	err = run(context.Background(), []string{"frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("want unknown command error, got %v", err)
	}
}

func TestGenerateThenInspect(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "generated.txt")

	if err := run(ctx, []string{"generate", "-out", out, "-items", "25", "-seed", "3"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("generated file missing: %v", err)
	}

	inst, err := instance.ReadFile(out)
	if err != nil {
		t.Fatalf("read generated instance: %v", err)
	}
	if inst.N() != 25 {
		t.Fatalf("generated %d items, want 25", inst.N())
	}

	if err := run(ctx, []string{"inspect", "-instance", out}); err != nil {
		t.Fatalf("inspect: %v", err)
	}
}

func TestSolveCommand(t *testing.T) {
	ctx := context.Background()
	instPath := writeTempFile(t, "tiny.txt", "# optimal: 18\n4 10\n10 5\n7 3\n8 4\n9 6\n")

	err := run(ctx, []string{
		"solve",
		"-instance", instPath,
		"-mechanism", "adaptive",
		"-iterations", "200",
		"-seed", "1",
		"-store", "memory",
	})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
}

func TestSolveCommandRequiresInstance(t *testing.T) {
	if err := run(context.Background(), []string{"solve", "-store", "memory"}); err == nil {
		t.Fatal("solve without an instance accepted")
	}
}

func TestBenchmarkCommand(t *testing.T) {
	ctx := context.Background()
	instPath := writeTempFile(t, "tiny.txt", "# optimal: 18\n4 10\n10 5\n7 3\n8 4\n9 6\n")

	err := run(ctx, []string{
		"benchmark",
		"-instance", instPath,
		"-mechanisms", "roulette,adaptive",
		"-runs", "2",
		"-iterations", "100",
	})
	if err != nil {
		t.Fatalf("benchmark: %v", err)
	}
}

func TestExportCommandWithEmptyStore(t *testing.T) {
	if err := run(context.Background(), []string{"export", "-store", "memory"}); err == nil {
		t.Fatal("export with an empty store accepted")
	}
}
