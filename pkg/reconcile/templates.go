package reconcile

import (
	"fmt"
	"strings"

	"github.com/breezy-run/breezy/pkg/config"
)

// applyTemplate substitutes the tag/name template placeholders.
func applyTemplate(template, version, directory string) string {
	rendered := strings.ReplaceAll(template, "$VERSION", version)
	return strings.ReplaceAll(rendered, "$DIRECTORY", directory)
}

func resolveTagName(version, tagPrefix, directory string, cfg *config.ReleaseConfig) string {
	if cfg != nil && cfg.TagTemplate != "" {
		return applyTemplate(cfg.TagTemplate, version, directory)
	}
	return strings.TrimSpace(tagPrefix) + version
}

func resolveReleaseName(version, tagName, branch, directory string, cfg *config.ReleaseConfig) string {
	if cfg != nil && cfg.NameTemplate != "" {
		return applyTemplate(cfg.NameTemplate, version, directory)
	}
	return fmt.Sprintf("%s (%s)", tagName, scopeLabel(branch, directory))
}

// scopeLabel names the reconciliation scope in log lines: the branch, or
// branch/directory for monorepo runs.
func scopeLabel(branch, directory string) string {
	if strings.TrimSpace(directory) != "" {
		return branch + "/" + directory
	}
	return branch
}
