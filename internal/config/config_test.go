package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a config file that does not exist: defaults apply.
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "." {
		t.Errorf("output_dir default: got %q", c.OutputDir)
	}
	if c.Clusters != 3 || c.Seed != 42 || c.MaxIterations != 300 {
		t.Errorf("segmentation defaults: %+v", c)
	}
	if c.ChartDPI != 150 || c.MaxRows != 0 {
		t.Errorf("render defaults: %+v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{OutputDir: "out", Clusters: 4, Seed: 7, MaxIterations: 50, ChartDPI: 300, MaxRows: 100}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("clusters: 5\noutput_dir: charts\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Clusters != 5 || c.OutputDir != "charts" {
		t.Errorf("file values not applied: %+v", c)
	}
	// Untouched keys keep defaults.
	if c.Seed != 42 {
		t.Errorf("seed default lost: %+v", c)
	}
}
