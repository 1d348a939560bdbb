// Package version resolves the semantic version that drives a release run
// from the project's manifest file. Each supported language archetype knows
// its canonical manifest and how to pull a version out of it.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Info carries the single resolved version for the current run. It is
// recomputed on every invocation, never cached.
type Info struct {
	Version string
}

// archetype binds a language name to its manifest file and parser. Adding a
// language is a new table entry, nothing else.
type archetype struct {
	manifest string
	parse    func(content []byte) (string, error)
}

var archetypes = map[string]archetype{
	"rust": {manifest: "Cargo.toml", parse: parseCargoVersion},
	"node": {manifest: "package.json", parse: parsePackageJSONVersion},
}

// ParseLanguages splits a raw language input on whitespace, commas, and plus
// signs into normalized archetype names.
func ParseLanguages(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '+'
	})
	languages := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		if name != "" {
			languages = append(languages, name)
		}
	}
	return languages
}

// Resolve tries each archetype in the caller-supplied order and returns the
// first version found. Every name is validated up front so an input with
// several typos is diagnosed in one pass. A manifest that is simply absent
// moves resolution to the next archetype; a manifest that exists but declares
// no version fails the run.
func Resolve(root string, languages []string) (Info, error) {
	var unknown []string
	for _, language := range languages {
		if _, ok := archetypes[language]; !ok {
			unknown = append(unknown, language)
		}
	}
	if len(unknown) > 0 {
		return Info{}, fmt.Errorf("unknown language archetype(s): %s", strings.Join(unknown, ", "))
	}

	attempted := make([]string, 0, len(languages))
	for _, language := range languages {
		arch := archetypes[language]
		path := filepath.Join(root, arch.manifest)
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				attempted = append(attempted, language)
				continue
			}
			return Info{}, fmt.Errorf("reading %s: %w", path, err)
		}

		version, err := arch.parse(content)
		if err != nil {
			return Info{}, fmt.Errorf("%s: %w", arch.manifest, err)
		}
		return Info{Version: version}, nil
	}

	return Info{}, fmt.Errorf(
		"unable to determine version from %s; ensure the expected version file exists",
		strings.Join(attempted, ", "))
}

// parseCargoVersion scans the manifest line by line tracking the current
// top-level section. A [package] version wins over a [workspace.package]
// one when both are declared.
func parseCargoVersion(content []byte) (string, error) {
	var workspaceVersion string
	section := ""

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = trimmed
			continue
		}
		if section != "[package]" && section != "[workspace.package]" {
			continue
		}

		value, ok := parseVersionAssignment(trimmed)
		if !ok {
			continue
		}
		if section == "[package]" {
			return value, nil
		}
		if workspaceVersion == "" {
			workspaceVersion = value
		}
	}

	if workspaceVersion != "" {
		return workspaceVersion, nil
	}
	return "", errors.New("no declared version in [package] or [workspace.package]")
}

// parseVersionAssignment extracts the value of a version = "…" line. The
// closing quote must match the opening one; whitespace around = is tolerated.
func parseVersionAssignment(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "version")
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	rest, ok = strings.CutPrefix(rest, "=")
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return "", false
	}

	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return "", false
	}
	remainder := rest[1:]
	end := strings.IndexByte(remainder, quote)
	if end < 0 {
		return "", false
	}
	return remainder[:end], true
}

func parsePackageJSONVersion(content []byte) (string, error) {
	var manifest map[string]any
	if err := json.Unmarshal(content, &manifest); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	version, ok := manifest["version"].(string)
	if !ok {
		return "", errors.New("no version field declared")
	}
	return version, nil
}

// IsPrerelease classifies a version string; it never fails. Build metadata
// after the first + is ignored. The remainder is a prerelease only when a
// non-empty suffix follows the first - and the part before it is a strict
// three-component digit triple.
func IsPrerelease(version string) bool {
	release := version
	if idx := strings.IndexByte(release, '+'); idx >= 0 {
		release = release[:idx]
	}

	idx := strings.IndexByte(release, '-')
	if idx < 0 {
		return false
	}
	core, suffix := release[:idx], release[idx+1:]
	if suffix == "" {
		return false
	}
	return isReleaseTriple(core)
}

func isReleaseTriple(core string) bool {
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
