package main

import (
	"os"
	"path/filepath"
	"testing"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/sheet"
)

func writeConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfig(t *testing.T) {
	cfg, err := readConfig(writeConfig(t, "side = \"left\"\nhandle = true\ndismissthreshold = 100\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := config{
		Side:             gesture.SideLeft,
		DragThreshold:    sheet.DefaultDragThreshold,
		DismissThreshold: 100,
		Handle:           true,
		Items:            50,
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestReadConfigErrors(t *testing.T) {
	for _, s := range []string{
		"side = \"middle\"\n",
		"sides = \"left\"\n",
		"dragthreshold = -1\n",
		"side = ",
	} {
		if _, err := readConfig(writeConfig(t, s)); err == nil {
			t.Errorf("reading %q succeeded", s)
		}
	}
	if _, err := readConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("reading a missing file succeeded")
	}
}

func TestReadConfigNoDismissThreshold(t *testing.T) {
	cfg, err := readConfig(writeConfig(t, "dismissthreshold = -1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.options().DismissThreshold; got != sheet.NoThreshold {
		t.Errorf("got dismiss threshold %g, want %g", got, float32(sheet.NoThreshold))
	}
}
