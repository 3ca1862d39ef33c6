package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataSource != "studentdashboard.csv" || c.ListenAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.HTTPTimeoutSec != 0 {
		t.Fatalf("remote fetch should have no time limit by default")
	}
	if c.DelimiterRune() != ',' {
		t.Fatalf("delimiter = %q", c.DelimiterRune())
	}
}

func TestSaveLoad_RoundTripAndEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{DataSource: "https://example.com/s.csv", Delimiter: ";", Title: "Class 7B"}
	if err := Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataSource != in.DataSource || c.DelimiterRune() != ';' || c.Title != "Class 7B" {
		t.Fatalf("round trip: %+v", c)
	}

	t.Setenv("STUDENTDASH_TITLE", "From Env")
	c, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Title != "From Env" {
		t.Fatalf("env should override file, got %q", c.Title)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STUDENTDASH_LISTEN_ADDR=:9999\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// restored on cleanup; godotenv only fills unset variables
	t.Setenv("STUDENTDASH_LISTEN_ADDR", "")
	os.Unsetenv("STUDENTDASH_LISTEN_ADDR")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ListenAddr != ":9999" {
		t.Fatalf("listen addr = %q", c.ListenAddr)
	}
}

func TestDelimiterRune(t *testing.T) {
	for in, want := range map[string]rune{"": ',', `\t`: '\t', "tab": '\t', "|": '|'} {
		if got := (&Global{Delimiter: in}).DelimiterRune(); got != want {
			t.Errorf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(&Global{Title: "From File", ListenAddr: ":8080"}, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Setenv("STUDENTDASH_TITLE", "From Env")
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Title != "From File" {
		t.Fatalf("title = %q, want file value", c.Title)
	}
}
