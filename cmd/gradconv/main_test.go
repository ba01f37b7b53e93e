package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/grd"
)

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	data, err := grd.Encode(&gradkit.Collection{Gradients: []gradkit.Gradient{
		{Name: "a", Stops: []gradkit.ColorStop{{Position: 0, Alpha: 1}, {Position: 1, Alpha: 1}}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "in.grd")
	if err := os.WriteFile(input, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config{outDir: filepath.Join(dir, "out"), format: "afpalette", split: "none", jobs: 2}
	if err := run(context.Background(), cfg, []string{input}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "in.afpalette")); err != nil {
		t.Errorf("output not written: %v", err)
	}

	if err := run(context.Background(), cfg, []string{filepath.Join(dir, "missing.grd")}); err == nil {
		t.Error("run() with a missing input should fail")
	}
}

func TestRunWatchRequiresOutputForGRD(t *testing.T) {
	cfg := config{watchDir: t.TempDir(), format: "grd"}
	if err := run(context.Background(), cfg, nil); err == nil {
		t.Error("run() should refuse to write .grd output into the watched directory")
	}
}

func TestRunWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config{watchDir: t.TempDir(), format: "afpalette"}
	if err := run(ctx, cfg, nil); err != nil {
		t.Errorf("run() error = %v", err)
	}
}
