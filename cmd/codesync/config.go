package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/nilehmann/codesync/internal/check"
	"github.com/nilehmann/codesync/internal/inflect"
)

// fileConfig is the on-disk shape of codesync.toml.
type fileConfig struct {
	Scan  scanConfig  `toml:"scan"`
	Check checkConfig `toml:"check"`
}

type scanConfig struct {
	IgnoreFile string `toml:"ignore_file"`
}

type checkConfig struct {
	Style            string   `toml:"style"`
	StrictWhitespace bool     `toml:"strict_whitespace"`
	LabelPattern     string   `toml:"label_pattern"`
	Acronyms         []string `toml:"acronyms"`
	DefaultCount     uint16   `toml:"default_count"`
}

// findCodesyncToml walks from startDir toward the filesystem root looking
// for a codesync.toml.
func findCodesyncToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "codesync.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadFileConfig reads the nearest codesync.toml above startDir. A missing
// file is not an error; every setting is optional.
func loadFileConfig(startDir string) (fileConfig, error) {
	var cfg fileConfig
	path, ok, err := findCodesyncToml(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// buildCheckConfig merges the file config with flag values; flags that
// were set explicitly win.
func buildCheckConfig(fc fileConfig, flags checkFlags) (check.Config, error) {
	cfg := check.DefaultConfig()

	if fc.Check.DefaultCount > 0 {
		cfg.DefaultCount = fc.Check.DefaultCount
	}
	if flags.defaultCountSet {
		cfg.DefaultCount = flags.defaultCount
	}

	styleName := fc.Check.Style
	if flags.style != "" {
		styleName = flags.style
	}
	if styleName != "" {
		style, err := inflect.ParseStyle(styleName)
		if err != nil {
			return check.Config{}, err
		}
		cfg.Style = &style
	}

	cfg.StrictWhitespace = fc.Check.StrictWhitespace || flags.strictWhitespace

	pattern := fc.Check.LabelPattern
	if flags.labelPattern != "" {
		pattern = flags.labelPattern
	}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return check.Config{}, fmt.Errorf("invalid label pattern: %w", err)
		}
		cfg.LabelPattern = re
	}

	cfg.Acronyms = fc.Check.Acronyms
	if len(flags.acronyms) > 0 {
		cfg.Acronyms = flags.acronyms
	}

	return cfg, nil
}
