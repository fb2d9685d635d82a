package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"galaxy/config"
	"galaxy/core"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("galaxy", flag.ContinueOnError)
	fs.Int("width", 1280, "")
	fs.String("variant", "classic", "")
	fs.Bool("mute", false, "")
	return fs
}

func TestLoadSettingsFlagsBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"galaxy":{"variant":"scatter"},"window":{"width":900}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet()
	if err := fs.Parse([]string{"-variant", "explode"}); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(path, fs)
	if err != nil {
		t.Fatal(err)
	}
	if s.Galaxy.Variant != "explode" {
		t.Errorf("variant = %q, want explode", s.Galaxy.Variant)
	}
	// an unset flag must not clobber the file
	if s.Window.Width != 900 {
		t.Errorf("width = %d, want 900", s.Window.Width)
	}
}

func TestLoadSettingsRejectsBadFlag(t *testing.T) {
	fs := newFlagSet()
	if err := fs.Parse([]string{"-variant", "supernova"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSettings(filepath.Join(t.TempDir(), "missing.json"), fs); err == nil {
		t.Error("expected an invalid variant error")
	}
}

func TestLoadSettingsFlagFixesBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"galaxy":{"variant":"implode"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet()
	if err := fs.Parse([]string{"-variant", "explode"}); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(path, fs)
	if err != nil {
		t.Fatalf("flag should override the bad file value: %v", err)
	}
	if s.Galaxy.Variant != "explode" {
		t.Errorf("variant = %q, want explode", s.Galaxy.Variant)
	}

	if _, err := loadSettings(path, newFlagSet()); !errors.Is(err, config.ErrInvalidVariant) {
		t.Errorf("bad file without a flag: err = %v", err)
	}
}

func TestParamsFrom(t *testing.T) {
	g := config.Default().Galaxy
	g.Variant = "scatter"
	g.Seed = 9
	g.MotionEnabled = false
	p, err := paramsFrom(g)
	if err != nil {
		t.Fatal(err)
	}
	if p.Variant != core.VariantScatter || p.Seed != 9 || p.MotionEnabled {
		t.Errorf("params = %+v", p)
	}
	if p.Textures == nil {
		t.Error("texture generator not set")
	}
}
