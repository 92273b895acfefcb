package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nilehmann/codesync/internal/inflect"
)

func TestFindCodesyncToml(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(root, "codesync.toml")
	if err := os.WriteFile(tomlPath, []byte("[check]\nstyle = \"snake\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findCodesyncToml(sub)
	if err != nil {
		t.Fatalf("findCodesyncToml failed: %v", err)
	}
	if !ok {
		t.Fatal("codesync.toml not found from nested directory")
	}
	if found != tomlPath {
		t.Errorf("found = %q, want %q", found, tomlPath)
	}
}

func TestLoadFileConfig(t *testing.T) {
	root := t.TempDir()
	content := `
[scan]
ignore_file = ".syncignore"

[check]
style = "kebab"
strict_whitespace = true
label_pattern = "^[a-z-]+$"
acronyms = ["db", "http"]
default_count = 3
`
	if err := os.WriteFile(filepath.Join(root, "codesync.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := loadFileConfig(root)
	if err != nil {
		t.Fatalf("loadFileConfig failed: %v", err)
	}
	if fc.Scan.IgnoreFile != ".syncignore" {
		t.Errorf("ignore_file = %q", fc.Scan.IgnoreFile)
	}
	if fc.Check.Style != "kebab" || !fc.Check.StrictWhitespace || fc.Check.DefaultCount != 3 {
		t.Errorf("check config = %+v", fc.Check)
	}
	if len(fc.Check.Acronyms) != 2 {
		t.Errorf("acronyms = %v", fc.Check.Acronyms)
	}
}

func TestBuildCheckConfig(t *testing.T) {
	fc := fileConfig{Check: checkConfig{
		Style:        "snake",
		DefaultCount: 3,
		Acronyms:     []string{"db"},
	}}

	// Flags win over file settings.
	cfg, err := buildCheckConfig(fc, checkFlags{
		style:           "kebab",
		defaultCount:    5,
		defaultCountSet: true,
		acronyms:        []string{"http"},
	})
	if err != nil {
		t.Fatalf("buildCheckConfig failed: %v", err)
	}
	if cfg.Style == nil || *cfg.Style != inflect.StyleKebab {
		t.Errorf("style = %v, want kebab", cfg.Style)
	}
	if cfg.DefaultCount != 5 {
		t.Errorf("default count = %d, want 5", cfg.DefaultCount)
	}
	if len(cfg.Acronyms) != 1 || cfg.Acronyms[0] != "http" {
		t.Errorf("acronyms = %v, want [http]", cfg.Acronyms)
	}

	// Without flags the file settings apply.
	cfg, err = buildCheckConfig(fc, checkFlags{})
	if err != nil {
		t.Fatalf("buildCheckConfig failed: %v", err)
	}
	if cfg.Style == nil || *cfg.Style != inflect.StyleSnake {
		t.Errorf("style = %v, want snake", cfg.Style)
	}
	if cfg.DefaultCount != 3 {
		t.Errorf("default count = %d, want 3", cfg.DefaultCount)
	}

	// Nothing configured: the conventional default.
	cfg, err = buildCheckConfig(fileConfig{}, checkFlags{})
	if err != nil {
		t.Fatalf("buildCheckConfig failed: %v", err)
	}
	if cfg.Style != nil || cfg.DefaultCount != 2 || cfg.LabelPattern != nil {
		t.Errorf("config = %+v, want bare defaults", cfg)
	}

	// A bad pattern is rejected.
	if _, err := buildCheckConfig(fileConfig{Check: checkConfig{LabelPattern: "("}}, checkFlags{}); err == nil {
		t.Error("invalid label pattern accepted")
	}
}
