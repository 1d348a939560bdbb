// Package config loads the optional release configuration file
// (.github/breezy.yml) that drives changelog categorization and templating.
// Files are read through koanf's file provider with the YAML parser.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultChangeTemplate renders a bare title when the config does not set a
// change-template of its own.
const DefaultChangeTemplate = "$TITLE"

const configFileName = "breezy.yml"

// Category is one named changelog bucket matched by pull-request label.
type Category struct {
	Title  string
	Labels []string
}

// ReleaseConfig is the parsed, normalized configuration consumed read-only by
// the reconciliation core. Labels are trimmed, lowercased, and de-blanked at
// load time.
type ReleaseConfig struct {
	Language       string
	TagTemplate    string
	NameTemplate   string
	Categories     []Category
	ExcludeLabels  []string
	ChangeTemplate string
	Template       string
}

// rawConfig mirrors the YAML schema. Keys use the hyphenated names
// release-drafter style configs settled on.
type rawConfig struct {
	Language       string        `koanf:"language"`
	TagTemplate    string        `koanf:"tag-template"`
	NameTemplate   string        `koanf:"name-template"`
	Categories     []rawCategory `koanf:"categories"`
	ExcludeLabels  []string      `koanf:"exclude-labels"`
	ChangeTemplate string        `koanf:"change-template"`
	Template       string        `koanf:"template"`
}

// rawCategory accepts both a labels list and the singular label shorthand.
type rawCategory struct {
	Title  string   `koanf:"title"`
	Labels []string `koanf:"labels"`
	Label  string   `koanf:"label"`
}

// Load resolves the release configuration for a run. An explicit path must
// exist; otherwise the loader falls back to $HOME/.github/breezy.yml, then
// <cwd>/.github/breezy.yml. A nil config with a nil error means no file was
// found anywhere, which is a valid way to run.
func Load(explicitPath, cwd string) (*ReleaseConfig, error) {
	if trimmed := strings.TrimSpace(explicitPath); trimmed != "" {
		path, err := expandPath(trimmed, cwd)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return readConfig(path)
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".github", configFileName)
		if _, err := os.Stat(homePath); err == nil {
			return readConfig(homePath)
		}
	}

	repoPath := filepath.Join(cwd, ".github", configFileName)
	if _, err := os.Stat(repoPath); err == nil {
		return readConfig(repoPath)
	}

	return nil, nil
}

func readConfig(path string) (*ReleaseConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("invalid config YAML in %s: %w", path, err)
	}

	var raw rawConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, fmt.Errorf("invalid config schema in %s: %w", path, err)
	}
	return raw.normalize(), nil
}

func (raw rawConfig) normalize() *ReleaseConfig {
	categories := make([]Category, 0, len(raw.Categories))
	for _, category := range raw.Categories {
		labels := append([]string(nil), category.Labels...)
		if category.Label != "" {
			labels = append(labels, category.Label)
		}
		categories = append(categories, Category{
			Title:  category.Title,
			Labels: normalizeLabels(labels),
		})
	}

	changeTemplate := strings.TrimSpace(raw.ChangeTemplate)
	if changeTemplate == "" {
		changeTemplate = DefaultChangeTemplate
	}

	return &ReleaseConfig{
		Language:       strings.ToLower(strings.TrimSpace(raw.Language)),
		TagTemplate:    strings.TrimSpace(raw.TagTemplate),
		NameTemplate:   strings.TrimSpace(raw.NameTemplate),
		Categories:     categories,
		ExcludeLabels:  normalizeLabels(raw.ExcludeLabels),
		ChangeTemplate: changeTemplate,
		Template:       strings.TrimSpace(raw.Template),
	}
}

// expandPath resolves ~ and relative paths against the working directory.
func expandPath(input, cwd string) (string, error) {
	if input == "~" || strings.HasPrefix(input, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		if input == "~" {
			return home, nil
		}
		return filepath.Join(home, strings.TrimPrefix(input, "~/")), nil
	}
	if filepath.IsAbs(input) {
		return input, nil
	}
	return filepath.Join(cwd, input), nil
}

func normalizeLabels(labels []string) []string {
	normalized := make([]string, 0, len(labels))
	for _, label := range labels {
		value := strings.ToLower(strings.TrimSpace(label))
		if value != "" {
			normalized = append(normalized, value)
		}
	}
	return normalized
}
